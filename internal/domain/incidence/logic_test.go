package incidence

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nomina/internal/domain/auth"
)

func TestInitialStatusByRole(t *testing.T) {
	cases := []struct {
		role string
		want string
	}{
		{auth.RoleClient, StatusApproved},
		{auth.RoleDepartmentHead, StatusPending},
		{auth.RoleOperator, StatusPending},
		{auth.RoleAdmin, StatusPending},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, InitialStatus(tc.role), tc.role)
	}
}

func TestRejectDescription(t *testing.T) {
	assert.Equal(t, "RECHAZADA: sin soporte", RejectDescription("", "sin soporte"))
	assert.Equal(t,
		"falta injustificada | RECHAZADA: sin soporte",
		RejectDescription("falta injustificada", "sin soporte"))
}

func TestValidType(t *testing.T) {
	for _, typ := range Types {
		assert.True(t, ValidType(typ), typ)
	}
	assert.False(t, ValidType("AGUINALDO"))
	assert.False(t, ValidType("falta"))
	assert.False(t, ValidType(""))
}

func TestMatchEmployee(t *testing.T) {
	byNumber := map[string]string{"100": "id-100"}
	byName := map[string]string{"jose perez": "id-jose"}

	assert.Equal(t, "id-100", matchEmployee(" 100 ", byNumber, byName))
	assert.Equal(t, "id-jose", matchEmployee("José  PÉREZ", byNumber, byName))
	assert.Equal(t, "", matchEmployee("999", byNumber, byName))
	assert.Equal(t, "", matchEmployee("Juana López", byNumber, byName))
	assert.Equal(t, "", matchEmployee("", byNumber, byName))
}

func TestRowIncidence(t *testing.T) {
	good := BulkRow{Type: "FALTA", Amount: "150.00", Quantity: "1", Date: "2024-03-05"}
	inc, ok := rowIncidence(good, "company-1", "emp-1")
	assert.True(t, ok)
	assert.Equal(t, "FALTA", inc.Type)
	assert.Equal(t, "company-1", inc.CompanyID)

	_, ok = rowIncidence(BulkRow{Type: "NOPE", Amount: "1", Date: "2024-03-05"}, "c", "e")
	assert.False(t, ok)

	_, ok = rowIncidence(BulkRow{Type: "FALTA", Amount: "1", Date: "05/03/2024"}, "c", "e")
	assert.False(t, ok)

	_, ok = rowIncidence(BulkRow{Type: "FALTA", Amount: "abc", Date: "2024-03-05"}, "c", "e")
	assert.False(t, ok)
}
