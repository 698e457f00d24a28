package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/hrsystem/hr-console/internal/access"
	"github.com/hrsystem/hr-console/internal/bootstrap"
	"github.com/hrsystem/hr-console/internal/domain/auth"
	"github.com/hrsystem/hr-console/internal/ports"
)

type commandFn func(ctx context.Context, ui *consoleUI, args []string) error

type command struct {
	name        string
	usage       string
	description string
	run         commandFn
}

func main() {
	logger := bootstrap.InitLogger()

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.ErrorContext(ctx, "build console", "error", err)
		os.Exit(1)
	}

	// Silent resumption: a stored token that no longer resolves leaves the
	// console logged out, which is not a startup failure.
	if resumeErr := app.Sessions.Resume(ctx); resumeErr != nil {
		logger.Warn("session not resumed", "error", resumeErr)
	}

	ui := &consoleUI{
		app:     app,
		out:     os.Stdout,
		logger:  logger,
		handles: newHandles(app.Screens),
	}
	if err := ui.run(ctx, os.Stdin); err != nil {
		logger.ErrorContext(ctx, "console exited", "error", err)
		os.Exit(1)
	}
}

// consoleUI is the interactive shell: one long-lived process, like the
// browser tab the session model assumes.
type consoleUI struct {
	app     *bootstrap.App
	out     io.Writer
	logger  *slog.Logger
	handles map[string]screenHandle

	active string // granted route path, empty when no screen is open
}

func (ui *consoleUI) run(ctx context.Context, in io.Reader) error {
	if err := ui.printWelcome(); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for {
		if err := writef(ui.out, "hr-console> "); err != nil {
			return err
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		name, args := fields[0], fields[1:]
		if name == "quit" || name == "exit" {
			return nil
		}

		cmd, ok := commands()[name]
		if !ok {
			if err := writef(ui.out, "unknown command %q; try \"help\"\n", name); err != nil {
				return err
			}
			continue
		}
		if err := cmd.run(ctx, ui, args); err != nil {
			if err := writef(ui.out, "error: %v\n", err); err != nil {
				return err
			}
		}
		if err := ui.afterCommand(); err != nil {
			return err
		}
	}
}

func commands() map[string]command {
	cmds := []command{
		{"help", "help", "list commands", cmdHelp},
		{"login", "login <email> <password>", "log in with local credentials", cmdLogin},
		{"login-google", "login-google <credential>", "log in with an externally issued Google ID token", cmdLoginGoogle},
		{"google-url", "google-url", "print the Google auth URL for the interactive flow", cmdGoogleURL},
		{"register", "register <email> <password> <username> <role> [verification-token]", "create a local account", cmdRegister},
		{"logout", "logout", "end the session", cmdLogout},
		{"whoami", "whoami", "show the current identity", cmdWhoami},
		{"routes", "routes", "show the route table and current access", cmdRoutes},
		{"open", "open <route>", "navigate to a management screen", cmdOpen},
		{"list", "list", "show the open screen's records", cmdList},
		{"search", "search [term]", "filter the open screen's records", cmdSearch},
		{"add", "add [field=value ...]", "open the create form", cmdAdd},
		{"edit", "edit <id> [field=value ...]", "open the edit form for a record", cmdEdit},
		{"set", "set field=value ...", "change fields on the open form", cmdSet},
		{"save", "save", "submit the open form", cmdSave},
		{"discard", "discard", "close the open form without saving", cmdDiscard},
		{"rm", "rm <id>", "ask to delete a record", cmdRequestDelete},
		{"confirm", "confirm", "confirm the pending delete", cmdConfirmDelete},
		{"cancel", "cancel", "cancel the pending delete", cmdCancelDelete},
	}
	out := make(map[string]command, len(cmds))
	for _, c := range cmds {
		out[c.name] = c
	}
	return out
}

func cmdHelp(_ context.Context, ui *consoleUI, _ []string) error {
	names := make([]string, 0, len(commands()))
	for name := range commands() {
		names = append(names, name)
	}
	sort.Strings(names)

	tw := tabwriter.NewWriter(ui.out, 0, 4, 2, ' ', 0)
	for _, name := range names {
		c := commands()[name]
		if err := writef(tw, "%s\t%s\n", c.usage, c.description); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func cmdLogin(ctx context.Context, ui *consoleUI, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: login <email> <password>")
	}
	if err := ui.app.Sessions.Login(ctx, args[0], args[1]); err != nil {
		return err
	}
	return ui.navigate(ctx, ui.app.Access.AfterLogin())
}

func cmdLoginGoogle(ctx context.Context, ui *consoleUI, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: login-google <credential>")
	}
	if err := ui.app.Sessions.LoginFederated(ctx, args[0]); err != nil {
		return err
	}
	return ui.navigate(ctx, ui.app.Access.AfterLogin())
}

func cmdGoogleURL(ctx context.Context, ui *consoleUI, _ []string) error {
	if ui.app.Google == nil {
		return fmt.Errorf("google login is not configured")
	}
	authURL, _, _, err := ui.app.Google.Begin(ctx)
	if err != nil {
		return err
	}
	return writef(ui.out, "%s\n", authURL)
}

func cmdRegister(ctx context.Context, ui *consoleUI, args []string) error {
	if len(args) < 4 {
		return fmt.Errorf("usage: register <email> <password> <username> <role> [verification-token]")
	}
	role, err := auth.ParseRole(args[3])
	if err != nil {
		return err
	}
	in := ports.RegisterInput{
		Email:    args[0],
		Password: args[1],
		Username: args[2],
		Role:     role,
	}
	if len(args) > 4 {
		in.VerificationToken = args[4]
	}
	if err := ui.app.Sessions.Register(ctx, in); err != nil {
		return err
	}
	return writef(ui.out, "registered; log in with your new credentials\n")
}

func cmdLogout(ctx context.Context, ui *consoleUI, _ []string) error {
	ui.app.Sessions.Logout(ctx)
	return writef(ui.out, "logged out\n")
}

func cmdWhoami(_ context.Context, ui *consoleUI, _ []string) error {
	snap := ui.app.Sessions.Current()
	if !snap.LoggedIn() || snap.Identity == nil {
		return writef(ui.out, "not logged in\n")
	}
	return writef(ui.out, "%s <%s> (%s)\n", snap.Identity.DisplayName, snap.Identity.Email, snap.Identity.Role)
}

func cmdRoutes(_ context.Context, ui *consoleUI, _ []string) error {
	tw := tabwriter.NewWriter(ui.out, 0, 4, 2, ' ', 0)
	for _, rule := range ui.app.Access.Rules() {
		state := access.Decide(ui.app.Sessions.Current(), rule)
		if err := writef(tw, "%s\t%s\t%s\n", rule.Path, rule.Title, state); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func cmdOpen(ctx context.Context, ui *consoleUI, args []string) error {
	path := "/"
	if len(args) > 0 {
		path = args[0]
	}
	return ui.navigate(ctx, path)
}

func cmdList(ctx context.Context, ui *consoleUI, _ []string) error {
	h, err := ui.openScreen()
	if err != nil {
		return err
	}
	h.Refresh(ctx)
	return h.RenderList(ui.out)
}

func cmdSearch(_ context.Context, ui *consoleUI, args []string) error {
	h, err := ui.openScreen()
	if err != nil {
		return err
	}
	h.SetSearch(strings.Join(args, " "))
	return h.RenderList(ui.out)
}

func cmdAdd(_ context.Context, ui *consoleUI, args []string) error {
	h, err := ui.openScreen()
	if err != nil {
		return err
	}
	if err := h.OpenCreate(); err != nil {
		return err
	}
	if len(args) == 0 {
		return writef(ui.out, "form open; use \"set field=value\" then \"save\"\n")
	}
	fields, err := parseFields(args)
	if err != nil {
		return err
	}
	return h.ApplyDraft(fields)
}

func cmdEdit(_ context.Context, ui *consoleUI, args []string) error {
	h, err := ui.openScreen()
	if err != nil {
		return err
	}
	if len(args) < 1 {
		return fmt.Errorf("usage: edit <id> [field=value ...]")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", args[0])
	}
	if err := h.OpenEdit(id); err != nil {
		return err
	}
	if len(args) == 1 {
		return nil
	}
	fields, err := parseFields(args[1:])
	if err != nil {
		return err
	}
	return h.ApplyDraft(fields)
}

func cmdSet(_ context.Context, ui *consoleUI, args []string) error {
	h, err := ui.openScreen()
	if err != nil {
		return err
	}
	fields, err := parseFields(args)
	if err != nil {
		return err
	}
	return h.ApplyDraft(fields)
}

func cmdSave(ctx context.Context, ui *consoleUI, _ []string) error {
	h, err := ui.openScreen()
	if err != nil {
		return err
	}
	if err := h.Submit(ctx); err != nil {
		return err
	}
	if fieldErrs := h.FieldErrors(); len(fieldErrs) > 0 {
		keys := make([]string, 0, len(fieldErrs))
		for k := range fieldErrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := writef(ui.out, "  %s: %s\n", k, strings.Join(fieldErrs[k], "; ")); err != nil {
				return err
			}
		}
		return writef(ui.out, "form still open; fix the fields and \"save\" again\n")
	}
	return nil
}

func cmdDiscard(_ context.Context, ui *consoleUI, _ []string) error {
	h, err := ui.openScreen()
	if err != nil {
		return err
	}
	h.CloseModal()
	return nil
}

func cmdRequestDelete(_ context.Context, ui *consoleUI, args []string) error {
	h, err := ui.openScreen()
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("usage: rm <id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", args[0])
	}
	if err := h.RequestDelete(id); err != nil {
		return err
	}
	return writef(ui.out, "delete %s %d? \"confirm\" or \"cancel\"\n", h.Title(), id)
}

func cmdConfirmDelete(ctx context.Context, ui *consoleUI, _ []string) error {
	h, err := ui.openScreen()
	if err != nil {
		return err
	}
	return h.ConfirmDelete(ctx)
}

func cmdCancelDelete(_ context.Context, ui *consoleUI, _ []string) error {
	h, err := ui.openScreen()
	if err != nil {
		return err
	}
	h.CancelDelete()
	return nil
}

// navigate runs one navigation attempt through the access controller and
// acts on its decision.
func (ui *consoleUI) navigate(ctx context.Context, path string) error {
	decision := ui.app.Access.Navigate(path)
	switch decision.State {
	case access.StateGranted:
		if ui.active != decision.Route {
			if prev, ok := ui.handles[ui.active]; ok {
				prev.Reset()
			}
			ui.active = decision.Route
		}
		h := ui.handles[ui.active]
		h.Refresh(ctx)
		return h.RenderList(ui.out)

	case access.StateDeniedRedirectLogin:
		ui.closeActive()
		return writef(ui.out, "please log in first (\"login\" or \"login-google\")\n")

	case access.StateDeniedRedirectHome:
		if path == "/" || path == "" {
			ui.closeActive()
			return writef(ui.out, "no route available\n")
		}
		if err := writef(ui.out, "not allowed; going home\n"); err != nil {
			return err
		}
		return ui.navigate(ctx, "/")

	default:
		return writef(ui.out, "resolving session, try again\n")
	}
}

// afterCommand re-evaluates access for the open screen and prints any
// banner. A logout mid-session revokes the screen immediately.
func (ui *consoleUI) afterCommand() error {
	if ui.active != "" {
		if d := ui.app.Access.Current(); d.State != access.StateGranted {
			ui.closeActive()
			if err := writef(ui.out, "screen closed: %s\n", d.State); err != nil {
				return err
			}
		}
	}
	if ui.active == "" {
		return nil
	}
	if banner, ok := ui.handles[ui.active].Banner().Current(); ok {
		return writef(ui.out, "[%s] %s\n", banner.Kind, banner.Message)
	}
	return nil
}

func (ui *consoleUI) openScreen() (screenHandle, error) {
	if ui.active == "" {
		return nil, fmt.Errorf("no screen open; use \"open <route>\"")
	}
	return ui.handles[ui.active], nil
}

func (ui *consoleUI) closeActive() {
	if h, ok := ui.handles[ui.active]; ok {
		h.Reset()
	}
	ui.active = ""
}

func (ui *consoleUI) printWelcome() error {
	snap := ui.app.Sessions.Current()
	if snap.LoggedIn() && snap.Identity != nil {
		return writef(ui.out, "HR console — resumed session for %s (%s)\n", snap.Identity.DisplayName, snap.Identity.Role)
	}
	return writef(ui.out, "HR console — not logged in; \"login <email> <password>\" to begin\n")
}

func parseFields(args []string) (map[string]string, error) {
	out := make(map[string]string, len(args))
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("expected field=value, got %q", arg)
		}
		out[k] = v
	}
	return out, nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}
