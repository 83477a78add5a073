package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomerInfoValidate(t *testing.T) {
	valid := CustomerInfo{
		FirstName: "Claire",
		LastName:  "Dubois",
		Email:     "claire.dubois@example.com",
		Phone:     "+33612345678",
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(ci *CustomerInfo)
	}{
		{"prénom manquant", func(ci *CustomerInfo) { ci.FirstName = "  " }},
		{"nom manquant", func(ci *CustomerInfo) { ci.LastName = "" }},
		{"email sans arobase", func(ci *CustomerInfo) { ci.Email = "claire.example.com" }},
		{"email sans domaine", func(ci *CustomerInfo) { ci.Email = "claire@" }},
		{"email avec espace", func(ci *CustomerInfo) { ci.Email = "claire @example.com" }},
		{"téléphone manquant", func(ci *CustomerInfo) { ci.Phone = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ci := valid
			tt.mutate(&ci)
			assert.Error(t, ci.Validate())
		})
	}
}

func TestAddressValidate(t *testing.T) {
	valid := Address{
		Street:  "12 rue des Lilas",
		City:    "Lyon",
		State:   "Rhône",
		Zip:     "69003",
		Country: "France",
	}
	assert.NoError(t, valid.Validate())

	zip94 := valid
	zip94.Zip = "69003-1234"
	assert.NoError(t, zip94.Validate())

	tests := []struct {
		name   string
		mutate func(a *Address)
	}{
		{"rue manquante", func(a *Address) { a.Street = "" }},
		{"ville manquante", func(a *Address) { a.City = " " }},
		{"code postal trop court", func(a *Address) { a.Zip = "1234" }},
		{"code postal alphanumérique", func(a *Address) { a.Zip = "6900A" }},
		{"extension invalide", func(a *Address) { a.Zip = "69003-12" }},
		{"pays manquant", func(a *Address) { a.Country = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := valid
			tt.mutate(&a)
			assert.Error(t, a.Validate())
		})
	}
}
