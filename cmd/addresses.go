package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	apperrors "github.com/medireach/storefront/internal/errors"
	"github.com/medireach/storefront/internal/models"
)

var (
	addressLabel   string
	addressStreet  string
	addressCity    string
	addressContact string
)

var addressesCmd = &cobra.Command{
	Use:   "addresses",
	Short: "Manage saved delivery addresses",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.close()

		addresses, err := a.book.List()
		if err != nil {
			return err
		}
		if len(addresses) == 0 {
			fmt.Println("No saved addresses. Add one with: medireach addresses add")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tLABEL\tSTREET\tCITY\tCONTACT")
		for _, addr := range addresses {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", addr.ID, addr.Label, addr.Street, addr.City, addr.Contact)
		}
		return w.Flush()
	},
}

var addressAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Save a new delivery address",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.close()

		saved, err := a.book.Upsert(models.Address{
			Label:   addressLabel,
			Street:  addressStreet,
			City:    addressCity,
			Contact: addressContact,
		})
		if err != nil {
			if ve, ok := apperrors.IsValidationError(err); ok {
				printValidation(ve)
				return nil
			}
			return err
		}
		fmt.Printf("Saved address %s (%s)\n", saved.ID, saved.Label)
		return nil
	},
}

var addressUpdateCmd = &cobra.Command{
	Use:   "update <address-id>",
	Short: "Update a saved address in place",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.close()

		existing, err := a.book.List()
		if err != nil {
			return err
		}
		var draft models.Address
		for _, addr := range existing {
			if addr.ID == args[0] {
				draft = addr
			}
		}
		if draft.IsZero() {
			fmt.Printf("Address not found: %s\n", args[0])
			return nil
		}

		if cmd.Flags().Changed("label") {
			draft.Label = addressLabel
		}
		if cmd.Flags().Changed("street") {
			draft.Street = addressStreet
		}
		if cmd.Flags().Changed("city") {
			draft.City = addressCity
		}
		if cmd.Flags().Changed("contact") {
			draft.Contact = addressContact
		}

		saved, err := a.book.Upsert(draft)
		if err != nil {
			if ve, ok := apperrors.IsValidationError(err); ok {
				printValidation(ve)
				return nil
			}
			return err
		}
		fmt.Printf("Updated address %s (%s)\n", saved.ID, saved.Label)
		return nil
	},
}

var addressRemoveCmd = &cobra.Command{
	Use:   "remove <address-id>",
	Short: "Delete a saved address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.book.Remove(args[0]); err != nil {
			return err
		}
		fmt.Printf("Removed address %s\n", args[0])
		return nil
	},
}

func printValidation(ve *apperrors.ValidationError) {
	fmt.Println("Please fix the following:")
	for _, d := range ve.Details {
		fmt.Printf("  %s: %s\n", d.Field, d.Message)
	}
}

func init() {
	for _, c := range []*cobra.Command{addressAddCmd, addressUpdateCmd} {
		c.Flags().StringVar(&addressLabel, "label", "", "Short label, e.g. Home or Office")
		c.Flags().StringVar(&addressStreet, "street", "", "Street and house details")
		c.Flags().StringVar(&addressCity, "city", "", "City (douala, yaounde, bafoussam)")
		c.Flags().StringVar(&addressContact, "contact", "", "Contact phone number")
	}
	addressesCmd.AddCommand(addressAddCmd)
	addressesCmd.AddCommand(addressUpdateCmd)
	addressesCmd.AddCommand(addressRemoveCmd)
	rootCmd.AddCommand(addressesCmd)
}
