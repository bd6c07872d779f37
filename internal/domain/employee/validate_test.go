package employee

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRow(number string) BulkRow {
	return BulkRow{
		EmployeeNumber: number,
		FirstName:      "José",
		LastName:       "Pérez",
		RFC:            "GOME800101AB1",
		CURP:           "GOMC800101HDFMRL09",
		NSS:            "12345678901",
		Email:          "jose.perez@example.com",
		Gender:         "MASCULINO",
		MaritalStatus:  "SOLTERO",
		ContractType:   "INDETERMINADO",
		Zone:           "GENERAL",
		SalaryType:     "FIJO",
		Salary:         "450.50",
		HireDate:       "2024-01-15",
	}
}

func emptyExisting() Existing {
	return Existing{
		Numbers: map[string]bool{},
		RFCs:    map[string]bool{},
		CURPs:   map[string]bool{},
		NSS:     map[string]bool{},
		Emails:  map[string]bool{},
	}
}

func TestValidRFC(t *testing.T) {
	assert.True(t, ValidRFC("GOME800101AB1"))
	assert.True(t, ValidRFC("XAXX010101000"))
	assert.False(t, ValidRFC("gome800101ab1"))
	assert.False(t, ValidRFC("GOME80010AB1"))
	assert.False(t, ValidRFC(""))
}

func TestValidCURP(t *testing.T) {
	assert.True(t, ValidCURP("GOMC800101HDFMRL09"))
	assert.True(t, ValidCURP("PEGJ850315MDFRRN08"))
	assert.False(t, ValidCURP("GOMC800101XDFMRL09"))
	assert.False(t, ValidCURP("GOMC800101HDFMRL0"))
	assert.False(t, ValidCURP(""))
}

func TestValidNSS(t *testing.T) {
	assert.True(t, ValidNSS("12345678901"))
	assert.True(t, ValidNSS("12-34567890-1"))
	assert.False(t, ValidNSS("1234567890"))
	assert.False(t, ValidNSS(""))
}

func TestValidateRowsCleanBatch(t *testing.T) {
	rows := []BulkRow{validRow("100"), func() BulkRow {
		r := validRow("101")
		r.RFC = "PEGJ850315QX2"
		r.CURP = "PEGJ850315MDFRRN08"
		r.NSS = "98765432109"
		r.Email = "juana@example.com"
		return r
	}()}

	report := ValidateRows(rows, emptyExisting())
	assert.True(t, report.Valid)
	assert.Empty(t, report.Errors)
}

func TestValidateRowsRequiredFields(t *testing.T) {
	report := ValidateRows([]BulkRow{{}}, emptyExisting())
	require.False(t, report.Valid)

	fields := map[string]bool{}
	for _, e := range report.Errors {
		assert.Equal(t, 1, e.Row)
		fields[e.Field] = true
	}
	for _, f := range []string{"employeeNumber", "firstName", "lastName", "rfc", "curp", "nss", "email", "salary", "hireDate"} {
		assert.True(t, fields[f], "missing required error for %s", f)
	}
}

func TestValidateRowsBatchDuplicateNumberFlagsBothRows(t *testing.T) {
	rows := []BulkRow{validRow("100"), func() BulkRow {
		r := validRow("100")
		r.RFC = "PEGJ850315QX2"
		r.CURP = "PEGJ850315MDFRRN08"
		r.NSS = "98765432109"
		r.Email = "juana@example.com"
		return r
	}()}

	report := ValidateRows(rows, emptyExisting())
	require.False(t, report.Valid)

	var flagged []int
	for _, e := range report.Errors {
		if e.Field == "employeeNumber" {
			flagged = append(flagged, e.Row)
		}
	}
	assert.ElementsMatch(t, []int{1, 2}, flagged)
}

func TestValidateRowsExistingIdentifiers(t *testing.T) {
	existing := emptyExisting()
	existing.Numbers["100"] = true
	existing.RFCs["GOME800101AB1"] = true
	existing.Emails["jose.perez@example.com"] = true

	report := ValidateRows([]BulkRow{validRow("100")}, existing)
	require.False(t, report.Valid)

	fields := map[string]bool{}
	for _, e := range report.Errors {
		fields[e.Field] = true
	}
	assert.True(t, fields["employeeNumber"])
	assert.True(t, fields["rfc"])
	assert.True(t, fields["email"])
}

func TestValidateRowsEnums(t *testing.T) {
	row := validRow("100")
	row.Gender = "OTRO_VALOR"
	row.Zone = "CENTRO"

	report := ValidateRows([]BulkRow{row}, emptyExisting())
	require.False(t, report.Valid)

	fields := map[string]bool{}
	for _, e := range report.Errors {
		fields[e.Field] = true
	}
	assert.True(t, fields["gender"])
	assert.True(t, fields["zone"])
	assert.False(t, fields["maritalStatus"])
}

func TestValidateRowsSalaryAndDate(t *testing.T) {
	row := validRow("100")
	row.Salary = "mucho"
	row.HireDate = "15/01/2024"

	report := ValidateRows([]BulkRow{row}, emptyExisting())
	require.False(t, report.Valid)

	fields := map[string]bool{}
	for _, e := range report.Errors {
		fields[e.Field] = true
	}
	assert.True(t, fields["salary"])
	assert.True(t, fields["hireDate"])
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "jose perez", NormalizeName("José  Pérez"))
	assert.Equal(t, "maria nunez", NormalizeName("MARÍA NÚÑEZ"))
	assert.Equal(t, NormalizeName("Ángel López"), NormalizeName("angel lopez"))
}
