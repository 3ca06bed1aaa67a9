// Package admincli implements the contentdesk-cli maintenance commands that
// run directly against the storage layer: account creation, user listing,
// integration settings, public upload links and session pruning.
package admincli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/contentdesk/internal/logging"
	"github.com/dmitrijs2005/contentdesk/internal/server/config"
	"github.com/dmitrijs2005/contentdesk/internal/server/services"
	"github.com/dmitrijs2005/contentdesk/internal/server/storage"
	"golang.org/x/term"
)

// ErrUsage is returned when no known command was given or its flags are invalid.
var ErrUsage = errors.New("usage error")

type command struct {
	name  string
	usage string
	run   func(a *App, ctx context.Context, args []string) error
}

var commands = []command{
	{"create-user", "create-user -name NAME [-role editor|admin]", (*App).createUser},
	{"list-users", "list-users", (*App).listUsers},
	{"set-setting", "set-setting -service SERVICE -key KEY -value VALUE", (*App).setSetting},
	{"list-settings", "list-settings -service SERVICE", (*App).listSettings},
	{"disable-setting", "disable-setting -service SERVICE -key KEY", (*App).disableSetting},
	{"upload-link", "upload-link -type team|article|carousel|image", (*App).uploadLink},
	{"prune-sessions", "prune-sessions", (*App).pruneSessions},
}

type App struct {
	storage      storage.Storage
	accounts     *services.AccountService
	integrations *services.IntegrationService
	images       *services.ImageService
	out          io.Writer

	// readPassword prompts for a password without echo
	readPassword func(prompt string) (string, error)
}

func NewApp(st storage.Storage, cfg *config.Config, logger logging.Logger, out io.Writer) *App {
	return &App{
		storage:      st,
		accounts:     services.NewAccountService(st, cfg, logger),
		integrations: services.NewIntegrationService(st, logger),
		images:       services.NewImageService(st, cfg, logger),
		out:          out,
		readPassword: readTerminalPassword,
	}
}

func readTerminalPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("password read error: %w", err)
	}
	return string(b), nil
}

// Run locates the first known command in args and executes it with the
// arguments that follow. Arguments before the command belong to the
// configuration layer and are ignored here.
func (a *App) Run(ctx context.Context, args []string) error {
	for i, arg := range args {
		idx := slices.IndexFunc(commands, func(c command) bool { return c.name == arg })
		if idx < 0 {
			continue
		}
		return commands[idx].run(a, ctx, args[i+1:])
	}
	a.printUsage()
	return ErrUsage
}

func (a *App) printUsage() {
	fmt.Fprintln(a.out, "Usage: contentdesk-cli [config flags] COMMAND [flags]")
	fmt.Fprintln(a.out, "Commands:")
	for _, c := range commands {
		fmt.Fprintf(a.out, "  %s\n", c.usage)
	}
}

func (a *App) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

func parse(fs *flag.FlagSet, args []string, required ...string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	for _, name := range required {
		if f := fs.Lookup(name); f == nil || f.Value.String() == "" {
			return fmt.Errorf("%w: -%s is required", ErrUsage, name)
		}
	}
	return nil
}

func (a *App) createUser(ctx context.Context, args []string) error {
	fs := a.flagSet("create-user")
	name := fs.String("name", "", "username")
	role := fs.String("role", "", "role (editor or admin)")
	if err := parse(fs, args, "name"); err != nil {
		return err
	}

	password, err := a.readPassword("Password: ")
	if err != nil {
		return err
	}
	confirm, err := a.readPassword("Repeat password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return errors.New("passwords do not match")
	}

	user, err := a.accounts.Register(ctx, services.RegisterInput{Username: *name, Password: password, Role: *role}, nil)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "User %s created with id %d (role %s)\n", user.Username, user.ID, user.Role)
	return nil
}

func (a *App) listUsers(ctx context.Context, args []string) error {
	if err := parse(a.flagSet("list-users"), args); err != nil {
		return err
	}

	users, err := a.storage.GetAllUsers(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tROLE\tLAST LOGIN")
	for _, u := range users {
		lastLogin := "never"
		if u.LastLogin != nil {
			lastLogin = u.LastLogin.UTC().Format(time.RFC3339)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", u.ID, u.Username, u.Role, lastLogin)
	}
	return w.Flush()
}

func (a *App) setSetting(ctx context.Context, args []string) error {
	fs := a.flagSet("set-setting")
	service := fs.String("service", "", "integration service")
	key := fs.String("key", "", "setting key")
	value := fs.String("value", "", "setting value")
	if err := parse(fs, args, "service", "key"); err != nil {
		return err
	}

	setting, err := a.integrations.Put(ctx, nil, *service, *key, *value)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Setting %s/%s saved (id %d)\n", setting.Service, setting.Key, setting.ID)
	return nil
}

func (a *App) listSettings(ctx context.Context, args []string) error {
	fs := a.flagSet("list-settings")
	service := fs.String("service", "", "integration service")
	if err := parse(fs, args, "service"); err != nil {
		return err
	}

	values, err := a.integrations.Values(ctx, *service)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		fmt.Fprintf(a.out, "%s=%s\n", k, values[k])
	}
	return nil
}

func (a *App) disableSetting(ctx context.Context, args []string) error {
	fs := a.flagSet("disable-setting")
	service := fs.String("service", "", "integration service")
	key := fs.String("key", "", "setting key")
	if err := parse(fs, args, "service", "key"); err != nil {
		return err
	}

	found, err := a.integrations.Disable(ctx, nil, *service, *key)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("setting %s/%s not found", *service, *key)
	}

	fmt.Fprintf(a.out, "Setting %s/%s disabled\n", *service, *key)
	return nil
}

func (a *App) uploadLink(ctx context.Context, args []string) error {
	fs := a.flagSet("upload-link")
	uploadType := fs.String("type", "", "upload type")
	if err := parse(fs, args, "type"); err != nil {
		return err
	}

	token, err := a.images.IssuePublicUploadToken(ctx, strings.ToLower(*uploadType))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "/public-upload/%s/%s\n", strings.ToLower(*uploadType), token)
	return nil
}

func (a *App) pruneSessions(ctx context.Context, args []string) error {
	if err := parse(a.flagSet("prune-sessions"), args); err != nil {
		return err
	}

	store := a.storage.SessionStore()
	if store == nil {
		return errors.New("no session store configured")
	}

	n, err := store.Prune(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%d expired sessions removed\n", n)
	return nil
}
