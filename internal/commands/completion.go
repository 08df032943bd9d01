package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"
)

// ReviewIDCompleter returns a ShellCompleteFunc that suggests review ids as
// positional completions, with the review title as the description.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func ReviewIDCompleter(flags *Flags) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		client, err := flags.Client()
		if err != nil {
			return
		}
		reviews, err := client.ListReviews(ctx)
		if err != nil {
			return
		}

		w := cmd.Root().Writer
		for _, r := range reviews {
			_, _ = fmt.Fprintf(w, "%s:%s\n", strconv.FormatInt(r.ID, 10), r.Title)
		}
	}
}
