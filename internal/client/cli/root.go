package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"paprikasync/internal/client/models"
)

// Run restores a previous session if one was persisted and then drives the
// command loop until exit or EOF.
func (a *App) Run(ctx context.Context) {
	if a.session.Refreshing() {
		a.session.Refresh(ctx)
	}

	fmt.Fprintln(a.out, "Welcome to paprikasync (type 'help' for commands)")

	for {
		fmt.Fprintf(a.out, "paprika %s> ", a.status())
		line, err := a.reader.ReadString('\n')
		if err != nil && line == "" {
			break
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			a.help()

		case "login":
			a.Login(ctx)

		case "logout":
			a.Logout(ctx)

		case "whoami":
			a.WhoAmI()

		case "rename":
			a.Rename(ctx)

		case "recipes":
			if !a.requireLogin() {
				continue
			}
			scope := models.Self
			if len(args) > 0 {
				id, err := strconv.Atoi(args[0])
				if err != nil || id <= 0 {
					fmt.Fprintln(a.out, "Usage: recipes [partner-id]")
					continue
				}
				scope = models.PartnerScope(id)
			}
			a.OpenRecipeList(ctx, scope)

		case "search":
			if !a.requireLogin() {
				continue
			}
			a.Search(strings.Join(args, " "))

		case "more":
			if !a.requireLogin() {
				continue
			}
			a.More()

		case "show":
			if !a.requireLogin() {
				continue
			}
			if len(args) != 1 {
				fmt.Fprintln(a.out, "Usage: show <recipe-id>")
				continue
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				fmt.Fprintln(a.out, "Usage: show <recipe-id>")
				continue
			}
			a.ShowRecipe(ctx, id)

		case "back":
			if !a.requireLogin() {
				continue
			}
			a.Back()

		case "categories":
			if !a.requireLogin() {
				continue
			}
			a.ShowCategories(ctx)

		case "partners":
			if !a.requireLogin() {
				continue
			}
			a.ShowPartners(ctx)

		case "partner":
			if !a.requireLogin() {
				continue
			}
			a.PartnerCommand(ctx, args)

		case "refresh":
			if !a.requireLogin() {
				continue
			}
			fmt.Fprintln(a.out, "Requesting a re-sync...")
			a.store.RefreshPaprika(ctx)
			fmt.Fprintln(a.out, "Done.")

		case "exit", "quit":
			return

		default:
			fmt.Fprintf(a.out, "Unknown command %q (type 'help')\n", cmd)
		}
	}
}

func (a *App) help() {
	if a.session.LoggedIn() {
		fmt.Fprintln(a.out, "Available commands:")
		fmt.Fprintln(a.out, "  recipes [partner-id]   list recipes (own or a partner's)")
		fmt.Fprintln(a.out, "  search <words>         filter the current recipe list")
		fmt.Fprintln(a.out, "  more                   next page of the current list")
		fmt.Fprintln(a.out, "  show <recipe-id>       recipe details")
		fmt.Fprintln(a.out, "  back                   return to the list where you left it")
		fmt.Fprintln(a.out, "  categories             list categories of the current scope")
		fmt.Fprintln(a.out, "  partners               list and manage partners")
		fmt.Fprintln(a.out, "  partner add <code> | approve <id> | reject <id> | cancel <id> | remove <id>")
		fmt.Fprintln(a.out, "  refresh                trigger a remote re-sync")
		fmt.Fprintln(a.out, "  whoami, rename, logout, exit")
	} else {
		fmt.Fprintln(a.out, "Available commands: login, exit")
	}
}
