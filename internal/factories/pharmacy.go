package factories

import (
	"math/rand"

	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"

	"github.com/medireach/storefront/internal/models"
)

type PharmacyFactory struct {
	fake faker.Faker
	rng  *rand.Rand
}

func NewPharmacyFactory(seed int64) *PharmacyFactory {
	return &PharmacyFactory{
		fake: faker.NewWithSeed(rand.NewSource(seed)),
		rng:  rand.New(rand.NewSource(seed)),
	}
}

var pharmacyCities = []string{"Douala", "Yaounde", "Bafoussam"}

func (pf *PharmacyFactory) CreatePharmacy() models.Pharmacy {
	return models.Pharmacy{
		ID:    cuid.New(),
		Name:  "Pharmacie " + pf.fake.Person().LastName(),
		City:  pharmacyCities[pf.rng.Intn(len(pharmacyCities))],
		Phone: "+237 6" + pf.fake.Numerify("## ### ###"),
	}
}

func (pf *PharmacyFactory) CreatePharmacies(count int) []models.Pharmacy {
	pharmacies := make([]models.Pharmacy, count)
	for i := range pharmacies {
		pharmacies[i] = pf.CreatePharmacy()
	}
	return pharmacies
}
