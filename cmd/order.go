package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/medireach/storefront/internal/api"
	"github.com/medireach/storefront/internal/checkout"
	apperrors "github.com/medireach/storefront/internal/errors"
	"github.com/medireach/storefront/internal/models"
)

var (
	orderQuantity     int
	orderPharmacy     string
	orderAddressID    string
	orderStreet       string
	orderCity         string
	orderPhone        string
	orderPayment      string
	orderPrescription bool
	orderNotes        string
	orderFollow       bool
)

var orderCmd = &cobra.Command{
	Use:   "order <medicine-id>",
	Short: "Place a delivery order for a medicine",
	Long: `Place a delivery order. The delivery fields can come from a saved
address (--address-id) or be given directly (--street, --city, --phone).
With --follow the courier simulation runs until arrival.`,
	Args: cobra.ExactArgs(1),
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

		draft := checkout.Draft{
			Medicine:        *medicine,
			Quantity:        orderQuantity,
			PaymentMethod:   orderPayment,
			Notes:           orderNotes,
			DeliveryAddress: orderStreet,
			City:            orderCity,
			Phone:           orderPhone,
		}

		if orderAddressID != "" {
			addresses, err := a.book.List()
			if err != nil {
				return err
			}
			for _, addr := range addresses {
				if addr.ID == orderAddressID {
					draft.SelectedAddress = addr
					draft.DeliveryAddress = addr.Street
					draft.City = addr.City
					draft.Phone = addr.Contact
				}
			}
			if draft.SelectedAddress.IsZero() {
				fmt.Printf("Address not found: %s\n", orderAddressID)
				return nil
			}
		}

		if pharmacy := pickPharmacy(a, orderPharmacy); pharmacy != nil {
			draft.PharmacyID = pharmacy.ID
			draft.PharmacyName = pharmacy.Name
		}
		if orderPrescription {
			draft.PrescriptionRef = uuid.NewString()
		}

		result, err := a.flow.Place(draft)
		if err != nil {
			if ve, ok := apperrors.IsValidationError(err); ok {
				printValidation(ve)
				return nil
			}
			return err
		}

		if a.demo != nil {
			now := time.Now()
			a.demo.AddOrder(models.Order{
				ID:              result.OrderID,
				Status:          models.OrderStatusPending,
				MedicineID:      medicine.ID,
				MedicineName:    medicine.Name,
				Quantity:        draft.Quantity,
				TotalPrice:      result.Total,
				DeliveryAddress: draft.DeliveryAddress,
				City:            draft.City,
				Phone:           draft.Phone,
				Pharmacy:        draft.PharmacyName,
				PaymentMethod:   draft.PaymentMethod,
				Notes:           draft.Notes,
				PrescriptionRef: draft.PrescriptionRef,
				OrderDate:       now,
			})
		} else {
			if _, err := a.client.CreateOrder(cmd.Context(), api.OrderRequest{
				MedicineID:      medicine.ID,
				Quantity:        draft.Quantity,
				DeliveryAddress: draft.DeliveryAddress,
				City:            draft.City,
				Phone:           draft.Phone,
				Pharmacy:        draft.PharmacyName,
				PaymentMethod:   draft.PaymentMethod,
				Notes:           draft.Notes,
				PrescriptionRef: draft.PrescriptionRef,
			}); err != nil {
				return err
			}
		}

		fmt.Println("Order placed!")
		fmt.Printf("  Order number: %s\n", result.OrderID)
		fmt.Printf("  %s x%d from %s\n", medicine.Name, draft.Quantity, draft.PharmacyName)
		fmt.Printf("  Deliver to:   %s, %s\n", draft.DeliveryAddress, draft.City)
		fmt.Printf("  Total:        %s XAF\n", result.Total.StringFixed(0))

		if orderFollow {
			a.engine.PublishStatus(result.OrderID, models.OrderStatusPending)
			return followCourier(a, result.OrderID, draft.City)
		}
		fmt.Printf("Track it with: medireach track %s\n", result.OrderID)
		return nil
	},
}

// pickPharmacy matches the flag against the demo catalog by id or name; with
// a backend the flag value is passed through as the pharmacy name.
func pickPharmacy(a *app, selector string) *models.Pharmacy {
	if a.demo == nil {
		if selector == "" {
			return nil
		}
		return &models.Pharmacy{ID: selector, Name: selector}
	}
	if selector == "" {
		if len(a.demo.Pharmacies) == 0 {
			return nil
		}
		return &a.demo.Pharmacies[0]
	}
	for i := range a.demo.Pharmacies {
		p := &a.demo.Pharmacies[i]
		if p.ID == selector || strings.EqualFold(p.Name, selector) {
			return p
		}
	}
	return nil
}

func init() {
	orderCmd.Flags().IntVarP(&orderQuantity, "quantity", "q", 1, "Number of units to order")
	orderCmd.Flags().StringVar(&orderPharmacy, "pharmacy", "", "Pharmacy id or name to order from")
	orderCmd.Flags().StringVar(&orderAddressID, "address-id", "", "Saved address to deliver to")
	orderCmd.Flags().StringVar(&orderStreet, "street", "", "Delivery street, when not using --address-id")
	orderCmd.Flags().StringVar(&orderCity, "city", "", "Delivery city, when not using --address-id")
	orderCmd.Flags().StringVar(&orderPhone, "phone", "", "Contact phone, when not using --address-id")
	orderCmd.Flags().StringVar(&orderPayment, "payment", models.PaymentMethodCash, "Payment method: cash or mobile_money")
	orderCmd.Flags().BoolVar(&orderPrescription, "prescription", false, "Attach a prescription reference")
	orderCmd.Flags().StringVar(&orderNotes, "notes", "", "Delivery notes")
	orderCmd.Flags().BoolVar(&orderFollow, "follow", false, "Run the courier simulation until arrival")
	rootCmd.AddCommand(orderCmd)
}
