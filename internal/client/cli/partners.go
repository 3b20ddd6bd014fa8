package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"paprikasync/internal/client/api"
	"paprikasync/internal/common"
)

// ShowPartners refreshes and prints both partner collections.
func (a *App) ShowPartners(ctx context.Context) {
	a.store.LoadActivePartners(ctx)
	a.store.LoadPendingPartners(ctx)

	active := a.store.ActivePartners()
	pending := a.store.PendingPartners()

	if len(active) == 0 && len(pending.Incoming) == 0 && len(pending.Outgoing) == 0 {
		fmt.Fprintln(a.out, "No partners yet. Exchange partner codes and use 'partner add <code>'.")
		fmt.Fprintf(a.out, "Your partner code: %s\n", a.session.PartnerCode())
		return
	}

	if len(active) > 0 {
		fmt.Fprintln(a.out, "Partners:")
		for _, p := range active {
			fmt.Fprintf(a.out, "  [%d] %s (%d recipes)\n", p.ID, p.Name, p.RecipeCount)
		}
	}
	if len(pending.Incoming) > 0 {
		fmt.Fprintln(a.out, "Awaiting your approval:")
		for _, p := range pending.Incoming {
			fmt.Fprintf(a.out, "  [%d] %s\n", p.ID, p.Name)
		}
	}
	if len(pending.Outgoing) > 0 {
		fmt.Fprintln(a.out, "Awaiting approval by your partner:")
		for _, p := range pending.Outgoing {
			fmt.Fprintf(a.out, "  [%d] %s\n", p.ID, p.Name)
		}
	}
}

// PartnerCommand dispatches the partner subcommands:
//
//	partner add <code>
//	partner approve <id>
//	partner reject <id>
//	partner cancel <id>
//	partner remove <id>
func (a *App) PartnerCommand(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(a.out, "Usage: partner add <code> | approve <id> | reject <id> | cancel <id> | remove <id>")
		return
	}

	sub := args[0]
	if sub == "add" {
		a.addPartner(ctx, args[1])
		return
	}

	id, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Fprintf(a.out, "Usage: partner %s <id>\n", sub)
		return
	}

	switch sub {
	case "approve":
		a.store.ApprovePendingPartner(ctx, id)
	case "reject", "cancel":
		a.store.DeletePendingPartner(ctx, id)
	case "remove":
		a.store.DeleteActivePartner(ctx, id)
	default:
		fmt.Fprintf(a.out, "Unknown partner subcommand %q.\n", sub)
		return
	}
	a.ShowPartners(ctx)
}

func (a *App) addPartner(ctx context.Context, code string) {
	err := a.store.RequestPartnership(ctx, code)
	if err != nil {
		switch api.ErrorCode(err) {
		case api.CodeNoSuchUser:
			fmt.Fprintln(a.out, "Invalid partner code.")
		case api.CodeCannotAddSelf:
			fmt.Fprintln(a.out, "That is your own partner code.")
		default:
			if errors.Is(err, common.ErrUnavailable) {
				fmt.Fprintln(a.out, "Server unavailable, try again later.")
			} else {
				fmt.Fprintf(a.out, "Partner request failed: %v\n", err)
			}
		}
		return
	}
	fmt.Fprintln(a.out, "Partner request sent.")
	a.ShowPartners(ctx)
}
