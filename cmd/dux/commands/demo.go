package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/duxkit/dux/shop"
)

var demoLatency time.Duration

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the shop scenario against the simulated backend",
	Long: `Runs a scripted search-and-checkout session entirely in memory and
prints every state change as it is observed, so the event flow of the
dispatch runtime can be watched end to end.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sim := shop.NewSimProxy(shop.Catalog())
		if demoLatency > 0 {
			sim.WithLatency(demoLatency/2, demoLatency)
		}
		app := shop.New(sim)

		heading := color.New(color.FgCyan, color.Bold)
		change := color.New(color.FgYellow)
		cancel := app.Store.Subscribe(func(s shop.State) {
			sv, cv := shop.ProjectSearch(s), shop.ProjectCart(s)
			change.Printf("  state: query=%q loading=%v results=%d err=%q | cart: %d items placing=%v order=%q err=%q\n",
				sv.Query, sv.Loading, len(sv.Results), sv.ErrorMessage,
				cv.Count, cv.Placing, cv.LastOrderID, cv.ErrorMessage)
		})
		defer cancel()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		heading.Println("search: Baseball glove")
		app.Search.SetQuery("Baseball glove")
		if err := app.Search.Run(ctx); err != nil {
			return err
		}
		for _, p := range shop.ProjectSearch(app.Store.State()).Results {
			fmt.Printf("  found %s (%s) $%.2f\n", p.Name, p.SKU, p.Price)
		}

		heading.Println("search: zzz (no matches, still a success)")
		app.Search.SetQuery("zzz")
		if err := app.Search.Run(ctx); err != nil {
			return err
		}

		heading.Println("checkout")
		glove := shop.Catalog()[0]
		app.Cart.Add(glove)
		app.Cart.Add(glove)
		if err := app.Cart.PlaceOrder(ctx); err != nil {
			return err
		}
		fmt.Printf("order id: %s\n", shop.ProjectCart(app.Store.State()).LastOrderID)
		return nil
	},
}

func init() {
	demoCmd.Flags().DurationVar(&demoLatency, "latency", 0, "Max simulated backend latency (0 disables)")
	rootCmd.AddCommand(demoCmd)
}
