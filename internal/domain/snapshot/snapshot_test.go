package snapshot

import (
	"encoding/json"
	"testing"

	"alamin-service/internal/domain/client"
	"alamin-service/internal/domain/insurance"
	xerrors "alamin-service/internal/pkg/errors"

	"github.com/stretchr/testify/require"
)

func TestImportDocument_RejectsMissingArrays(t *testing.T) {
	cases := []struct {
		name string
		body string
		ok   bool
	}{
		{"both arrays", `{"clients":[],"insuranceCompanies":[]}`, true},
		{"missing clients", `{"insuranceCompanies":[]}`, false},
		{"missing insurance", `{"clients":[]}`, false},
		{"empty document", `{}`, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var doc ImportDocument
			require.NoError(t, json.Unmarshal([]byte(tc.body), &doc))

			err := doc.Validate()
			if tc.ok {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, xerrors.ErrInvalidInput)
			}
		})
	}
}

func TestImportDocument_EmptyArraysAreValid(t *testing.T) {
	doc := ImportDocument{
		Clients:            &[]client.Client{},
		InsuranceCompanies: &[]insurance.Company{},
	}
	require.NoError(t, doc.Validate())
}

func TestSnapshot_WireFieldNames(t *testing.T) {
	data, err := json.Marshal(Snapshot{})
	require.NoError(t, err)

	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &m))
	require.Contains(t, m, "clients")
	require.Contains(t, m, "insuranceCompanies")
	require.Contains(t, m, "exportDate")
}
