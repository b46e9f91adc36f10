package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/naveenspark/ghfinder/internal/browser"
	"github.com/naveenspark/ghfinder/internal/config"
	"github.com/naveenspark/ghfinder/internal/search"
	"github.com/naveenspark/ghfinder/pkg/domain"
)

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Print one page of search results",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "page",
				Usage: "Result page (5 users per page)",
				Value: 1,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			query := strings.Join(c.Args().Slice(), " ")
			if strings.TrimSpace(query) == "" {
				return errors.New("search: query is required")
			}
			page := c.Int("page")
			if page < 1 {
				return fmt.Errorf("search: invalid page %d", page)
			}
			e, err := setup(c)
			if err != nil {
				return err
			}
			defer e.close()

			res, err := e.client.SearchUsers(ctx, query, page, search.PerPage)
			if err != nil {
				e.log.Warnw("search failed", "query", query, "page", page, "error", err)
				return errors.New(search.FailureMessage)
			}
			printSearchPage(os.Stdout, res, page)
			return nil
		},
	}
}

func userCommand() *cli.Command {
	return &cli.Command{
		Name:      "user",
		Usage:     "Print a user's profile",
		ArgsUsage: "<login>",
		Action: func(ctx context.Context, c *cli.Command) error {
			login := c.Args().First()
			if login == "" {
				return errors.New("user: login is required")
			}
			e, err := setup(c)
			if err != nil {
				return err
			}
			defer e.close()

			u, err := e.client.GetUser(ctx, login)
			if err != nil {
				e.log.Warnw("user lookup failed", "login", login, "error", err)
				return errors.New(search.FailureMessage)
			}
			printUser(os.Stdout, u)
			return nil
		},
	}
}

func openCommand() *cli.Command {
	return &cli.Command{
		Name:      "open",
		Usage:     "Open a user's GitHub profile in the browser",
		ArgsUsage: "<login>",
		Action: func(ctx context.Context, c *cli.Command) error {
			login := c.Args().First()
			if login == "" {
				return errors.New("open: login is required")
			}
			e, err := setup(c)
			if err != nil {
				return err
			}
			defer e.close()

			u, err := e.client.GetUser(ctx, login)
			if err != nil {
				e.log.Warnw("user lookup failed", "login", login, "error", err)
				return errors.New(search.FailureMessage)
			}
			if err := browser.Open(u.HTMLURL); err != nil {
				fmt.Printf("Could not open browser. Visit this URL manually:\n  %s\n", u.HTMLURL)
			}
			return nil
		},
	}
}

func loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Save a GitHub personal access token for higher rate limits",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "token",
				Usage: "Token to save (read from stdin when omitted)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			token := c.String("token")
			if token == "" {
				fmt.Print("Paste a GitHub token: ")
				var err error
				token, err = readLine(os.Stdin)
				if err != nil {
					return fmt.Errorf("read token: %w", err)
				}
			}
			path, err := config.TokenFilePath()
			if err != nil {
				return err
			}
			if err := saveToken(path, token); err != nil {
				return err
			}
			fmt.Printf("Token saved to %s\n", path)
			return nil
		},
	}
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "Remove the saved token",
		Action: func(ctx context.Context, c *cli.Command) error {
			path, err := config.TokenFilePath()
			if err != nil {
				return err
			}
			removed, err := removeToken(path)
			if err != nil {
				return err
			}
			if !removed {
				fmt.Println("Already logged out.")
				return nil
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Print the effective configuration as TOML",
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}
			out, err := cfg.TOML()
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print the version",
		Action: func(ctx context.Context, c *cli.Command) error {
			fmt.Println("ghfinder " + version)
			return nil
		},
	}
}

// printSearchPage writes one page of hits with its pagination bounds.
func printSearchPage(w io.Writer, res *domain.SearchPage, page int) {
	if len(res.Items) == 0 {
		fmt.Fprintln(w, "No users found.") //nolint:errcheck
		return
	}
	for i, u := range res.Items {
		fmt.Fprintf(w, "%2d. %-20s %s\n", (page-1)*search.PerPage+i+1, u.Login, u.HTMLURL) //nolint:errcheck
	}
	b := search.Paginate(page, search.PerPage, res.TotalCount)
	fmt.Fprintf(w, "\npage %d of %d · %d total", page, search.TotalPages(search.PerPage, res.TotalCount), res.TotalCount) //nolint:errcheck
	if b.CanGoNext {
		fmt.Fprintf(w, " · next: --page %d", page+1) //nolint:errcheck
	}
	fmt.Fprintln(w) //nolint:errcheck
}

// printUser writes every profile field, substituting N/A for absent ones.
func printUser(w io.Writer, u *domain.UserSummary) {
	rows := []struct{ label, value string }{
		{"Login", u.Login},
		{"Name", domain.OrPlaceholder(u.Name)},
		{"Location", domain.OrPlaceholder(u.Location)},
		{"Email", domain.OrPlaceholder(u.Email)},
		{"Public Repos", fmt.Sprintf("%d", u.PublicRepos)},
		{"Account Created", domain.FormatDate(u.CreatedAt)},
		{"Last Updated", domain.FormatDate(u.UpdatedAt)},
		{"Profile", u.HTMLURL},
		{"Avatar", domain.OrPlaceholder(&u.AvatarURL)},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%-16s %s\n", r.label, r.value) //nolint:errcheck
	}
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// saveToken writes token to path with owner-only permissions.
func saveToken(path, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("login: empty token")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

// removeToken deletes the token file and reports whether one existed.
func removeToken(path string) (bool, error) {
	err := os.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("remove token: %w", err)
	}
	return true, nil
}
