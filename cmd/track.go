package cmd

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	apperrors "github.com/medireach/storefront/internal/errors"
	"github.com/medireach/storefront/internal/models"
	"github.com/medireach/storefront/internal/tracking"
)

var trackFollow bool

var trackCmd = &cobra.Command{
	Use:   "track <order-number>",
	Short: "Show an order's status timeline",
	Long: `Show where an order is in its lifecycle. With --follow, a courier
simulation runs from just outside the delivery city to the drop-off point
and the order is marked delivered on arrival.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.close()

		resolved, err := a.resolver.Resolve(cmd.Context(), args[0])
		if err != nil {
			if _, ok := apperrors.IsNotFoundError(err); ok {
				fmt.Printf("No order found with number %s. Check the number and try again.\n", args[0])
				return nil
			}
			return err
		}

		printOrderSummary(resolved)
		printTimeline(resolved.Order.Status)
		a.engine.PublishStatus(resolved.Order.ID, resolved.Order.Status)

		if !trackFollow {
			return nil
		}
		if resolved.Order.Status == models.OrderStatusDelivered {
			fmt.Println("Order already delivered.")
			return nil
		}
		return followCourier(a, resolved.Order.ID, resolved.City())
	},
}

func printOrderSummary(resolved models.ResolvedOrder) {
	order := resolved.Order
	fmt.Printf("Order %s — %s\n", order.ID, order.Status)
	fmt.Printf("  %s x%d", order.MedicineName, order.Quantity)
	if order.Pharmacy != "" {
		fmt.Printf(" from %s", order.Pharmacy)
	}
	fmt.Println()
	if resolved.Bound {
		addr := resolved.Address
		fmt.Printf("  Deliver to: %s, %s, %s (%s)\n", addr.Label, addr.Street, addr.City, addr.Contact)
	} else if order.DeliveryAddress != "" {
		fmt.Printf("  Deliver to: %s", order.DeliveryAddress)
		if order.City != "" {
			fmt.Printf(", %s", order.City)
		}
		fmt.Println()
	}
	if !order.TotalPrice.IsZero() {
		fmt.Printf("  Total: %s XAF\n", order.TotalPrice.StringFixed(0))
	}
	if order.DeliveryDate != nil {
		fmt.Printf("  Delivered: %s\n", order.DeliveryDate.Format("Mon 2 Jan 15:04"))
	} else if order.EstimatedDelivery != nil {
		fmt.Printf("  Estimated delivery: %s\n", order.EstimatedDelivery.Format("Mon 2 Jan 15:04"))
	}
}

func printTimeline(status string) {
	fmt.Println()
	for _, step := range tracking.ProjectTimeline(status) {
		mark := " "
		if step.Completed {
			mark = "x"
		}
		cursor := "  "
		if step.Active {
			cursor = "> "
		}
		fmt.Printf("  %s[%s] %s\n", cursor, mark, step.Label)
	}
	fmt.Println()
}

// followCourier drives the delivery simulation for one order, rendering the
// courier's remaining distance as a progress bar until arrival.
func followCourier(a *app, orderID, city string) error {
	a.engine.PublishStatus(orderID, models.OrderStatusInTransit)

	const barSteps = 1000
	bar := progressbar.NewOptions(barSteps,
		progressbar.OptionSetDescription("courier en route"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionClearOnFinish(),
	)

	destination := tracking.DestinationForCity(city, a.cfg.DefaultCity)
	start := models.Location{
		Lat: destination.Lat + a.cfg.CourierOffsetLat,
		Lng: destination.Lng + a.cfg.CourierOffsetLng,
	}
	initial := tracking.PlanarDistance(start, destination)

	session := a.engine.Start(orderID, city, func(update models.CourierPositionUpdate) {
		remaining := tracking.PlanarDistance(update.Courier, update.Destination)
		if initial <= 0 {
			return
		}
		progress := int(float64(barSteps) * (1 - remaining/initial))
		if progress < 0 {
			progress = 0
		}
		if progress > barSteps {
			progress = barSteps
		}
		_ = bar.Set(progress)
	})

	<-session.Done()
	_ = bar.Finish()

	if _, arrived := session.Position(); arrived {
		a.engine.PublishStatus(orderID, models.OrderStatusDelivered)
		if a.demo != nil {
			a.demo.MarkDelivered(orderID)
		}
		fmt.Println("Courier arrived. Order delivered!")
	}
	return nil
}

func init() {
	trackCmd.Flags().BoolVar(&trackFollow, "follow", false, "Run the courier simulation until arrival")
	rootCmd.AddCommand(trackCmd)
}
