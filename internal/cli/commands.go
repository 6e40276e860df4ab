package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/oksasatya/go-project-marketplace/internal/domain/entity"
	"github.com/oksasatya/go-project-marketplace/internal/domain/listing"
)

// App carries the dependencies shared by every command.
type App struct {
	Client *Client
	Tokens *TokenStore
	In     io.Reader
}

// NewApp builds an App talking to server and keeping its token in the default store.
func NewApp(server string) (*App, error) {
	tokens, err := DefaultTokenStore()
	if err != nil {
		return nil, err
	}
	return &App{Client: NewClient(server, 15*time.Second), Tokens: tokens, In: os.Stdin}, nil
}

// NewRootCmd assembles the marketctl command tree.
func NewRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "marketctl",
		Short:         "Browse, manage and buy projects on the marketplace",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(
		newLoginCmd(app),
		newProjectsCmd(app),
		newBuyCmd(app),
	)
	return cmd
}

func newLoginCmd(app *App) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if email == "" {
				return errors.New("--email is required")
			}
			password, err := promptPassword(app.In, cmd.OutOrStdout())
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			token, err := app.Client.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			if err := app.Tokens.Save(token); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s\n", email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	return cmd
}

func newProjectsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "projects",
		Short:             "List, show and delete projects",
		PersistentPreRunE: app.authenticate,
	}
	cmd.AddCommand(
		newProjectsListCmd(app),
		newProjectsShowCmd(app),
		newProjectsDeleteCmd(app),
	)
	return cmd
}

func newProjectsListCmd(app *App) *cobra.Command {
	var keyword, minPrice, maxPrice string
	var mine bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects, narrowed by keyword and price range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			all, err := app.Client.ListProjects(cmd.Context(), mine)
			if err != nil {
				return err
			}
			shown := listing.Filter(all, listing.ParseCriteria(keyword, minPrice, maxPrice))
			return printProjects(cmd.OutOrStdout(), shown)
		},
	}
	f := cmd.Flags()
	f.StringVar(&keyword, "keyword", "", "match title or description, case-insensitive")
	f.StringVar(&minPrice, "min-price", "", "lowest price to include")
	f.StringVar(&maxPrice, "max-price", "", "highest price to include")
	f.BoolVar(&mine, "mine", false, "only my projects")
	return cmd
}

func newProjectsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Client.GetProject(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printProject(cmd.OutOrStdout(), p)
			return nil
		},
	}
}

func newProjectsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one of your projects",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Client.DeleteProject(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted project %s\n", args[0])
			return nil
		},
	}
}

func newBuyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "buy <project-id>",
		Short:   "Start a purchase and print the payment intent",
		Args:    cobra.ExactArgs(1),
		PreRunE: app.authenticate,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Client.Buy(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "purchase:      %s\n", res.PurchaseID)
			fmt.Fprintf(out, "amount:        %s %s\n", formatCents(res.AmountCents), strings.ToUpper(res.Currency))
			fmt.Fprintf(out, "client secret: %s\n", res.ClientSecret)
			return nil
		},
	}
}

// authenticate loads the stored token onto the client.
func (a *App) authenticate(_ *cobra.Command, _ []string) error {
	token, err := a.Tokens.Load()
	if err != nil {
		return err
	}
	if token == "" {
		return fmt.Errorf("%w: run `marketctl login --email <email>` first", ErrUnauthorized)
	}
	a.Client.SetToken(token)
	return nil
}

func printProjects(w io.Writer, projects []entity.Project) error {
	if len(projects) == 0 {
		_, err := fmt.Fprintln(w, "no projects found")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPRICE\tAUTHOR\tTECHNOLOGIES")
	for _, p := range projects {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%s\t%s\n",
			p.ID, p.Title, p.Price, p.Author.Name, strings.Join(p.Technologies, ", "))
	}
	return tw.Flush()
}

func printProject(w io.Writer, p entity.Project) {
	fmt.Fprintf(w, "%s\n%s\n\n", p.Title, p.Description)
	fmt.Fprintf(w, "id:           %s\n", p.ID)
	fmt.Fprintf(w, "price:        %.2f\n", p.Price)
	fmt.Fprintf(w, "author:       %s <%s>\n", p.Author.Name, p.Author.Email)
	fmt.Fprintf(w, "technologies: %s\n", strings.Join(p.Technologies, ", "))
	for _, a := range p.Attachments {
		fmt.Fprintf(w, "attachment:   %s %s\n", a.Filename, a.URL)
	}
}

func formatCents(c int64) string {
	return fmt.Sprintf("%d.%02d", c/100, c%100)
}
