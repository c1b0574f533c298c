// Package factories builds demo catalog data so the storefront is usable
// without a reachable backend, mirroring the mock data the original client
// shipped with.
package factories

import (
	"fmt"
	"math/rand"

	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"
	"github.com/shopspring/decimal"

	"github.com/medireach/storefront/internal/models"
)

type MedicineFactory struct {
	fake faker.Faker
	rng  *rand.Rand
}

func NewMedicineFactory(seed int64) *MedicineFactory {
	return &MedicineFactory{
		fake: faker.NewWithSeed(rand.NewSource(seed)),
		rng:  rand.New(rand.NewSource(seed)),
	}
}

var medicineNames = []string{
	"Paracetamol 500mg", "Ibuprofen 400mg", "Amoxicillin 500mg", "Vitamin C 1000mg",
	"Omeprazole 20mg", "Cetirizine 10mg", "Metformin 850mg", "Artemether-Lumefantrine",
	"Azithromycin 250mg", "Loratadine 10mg", "Diclofenac Gel", "Cough Syrup 100ml",
}

var medicineCategories = []string{
	"Pain Relief", "Antibiotics", "Vitamins", "Digestive Health",
	"Allergy", "Diabetes", "Antimalarial", "Cold & Flu",
}

func (mf *MedicineFactory) CreateMedicine() models.Medicine {
	name := medicineNames[mf.rng.Intn(len(medicineNames))]
	// Antibiotics and antimalarials are the prescription-only slice of the
	// demo catalog.
	category := medicineCategories[mf.rng.Intn(len(medicineCategories))]
	requiresPrescription := category == "Antibiotics" || category == "Antimalarial"

	return models.Medicine{
		ID:                   cuid.New(),
		Name:                 name,
		Category:             category,
		Description:          mf.fake.Lorem().Sentence(12),
		Dosage:               fmt.Sprintf("%d tablet(s) %d time(s) daily", mf.rng.Intn(2)+1, mf.rng.Intn(3)+1),
		Manufacturer:         mf.fake.Company().Name(),
		Price:                decimal.NewFromInt(int64(mf.rng.Intn(49)+1) * 100),
		Stock:                mf.rng.Intn(95) + 5,
		RequiresPrescription: requiresPrescription,
	}
}

func (mf *MedicineFactory) CreateCatalog(count int) []models.Medicine {
	catalog := make([]models.Medicine, count)
	for i := range catalog {
		catalog[i] = mf.CreateMedicine()
	}
	return catalog
}
