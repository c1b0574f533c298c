package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	apperrors "github.com/medireach/storefront/internal/errors"
	"github.com/medireach/storefront/internal/models"
)

var medicinesCmd = &cobra.Command{
	Use:   "medicines",
	Short: "Browse the medicine catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.close()

		var medicines []models.Medicine
		if a.demo != nil {
			medicines = a.demo.Medicines
		} else {
			medicines, err = a.client.Medicines(cmd.Context(), nil)
			if err != nil {
				return err
			}
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE (XAF)\tSTOCK\tRX")
		for _, m := range medicines {
			rx := ""
			if m.RequiresPrescription {
				rx = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n", m.ID, m.Name, m.Category, m.Price.StringFixed(0), m.Stock, rx)
		}
		return w.Flush()
	},
}

var medicineShowCmd = &cobra.Command{
	Use:   "show <medicine-id>",
	Short: "Show one medicine's details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.close()

		var medicine *models.Medicine
		if a.demo != nil {
			medicine, err = a.demo.Medicine(args[0])
		} else {
			medicine, err = a.client.Medicine(cmd.Context(), args[0])
		}
		if err != nil {
			if nf, ok := apperrors.IsNotFoundError(err); ok {
				fmt.Printf("Medicine not found: %s\n", nf.ID)
				return nil
			}
			return err
		}

		fmt.Printf("%s\n", medicine.Name)
		fmt.Printf("  Category:     %s\n", medicine.Category)
		fmt.Printf("  Price:        %s XAF\n", medicine.Price.StringFixed(0))
		fmt.Printf("  Stock:        %d\n", medicine.Stock)
		if medicine.Dosage != "" {
			fmt.Printf("  Dosage:       %s\n", medicine.Dosage)
		}
		if medicine.RequiresPrescription {
			fmt.Println("  Prescription: required")
		}
		if medicine.Description != "" {
			fmt.Printf("  %s\n", medicine.Description)
		}
		return nil
	},
}

func init() {
	medicinesCmd.AddCommand(medicineShowCmd)
	rootCmd.AddCommand(medicinesCmd)
}
