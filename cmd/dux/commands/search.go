package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/duxkit/dux/services"
	"github.com/duxkit/dux/shop"
)

var searchCmd = &cobra.Command{
	Use:   "search <text>",
	Short: "Search the product API through the HTTP proxy",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := shop.New(services.NewHTTPBackend(resolveServerURL(), nil))
		app.Search.SetQuery(args[0])

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if err := app.Search.Run(ctx); err != nil {
			return err
		}

		view := shop.ProjectSearch(app.Store.State())
		if view.ErrorMessage != "" {
			return fmt.Errorf("search failed: %s", view.ErrorMessage)
		}
		if len(view.Results) == 0 {
			fmt.Println("no products matched")
			return nil
		}
		for _, p := range view.Results {
			fmt.Printf("%-12s %-28s $%.2f\n", p.SKU, p.Name, p.Price)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
