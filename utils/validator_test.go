package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type folderNameProbe struct {
	Name string `json:"name" validate:"required,folder_name"`
}

type passwordProbe struct {
	Password string `json:"password" validate:"required,strong_password"`
}

func TestValidateFolderName(t *testing.T) {
	valid := []string{"photos", "Vacation 2024", "rapports financiers", "a.b"}
	for _, name := range valid {
		require.NoError(t, ValidateStruct(&folderNameProbe{Name: name}), name)
	}

	invalid := []string{"", "  ", "a/b", `a\b`, "a:b", "what?", "x|y", "<script>"}
	for _, name := range invalid {
		require.Error(t, ValidateStruct(&folderNameProbe{Name: name}), name)
	}
}

func TestValidateStrongPassword(t *testing.T) {
	require.NoError(t, ValidateStruct(&passwordProbe{Password: "Str0ngPass"}))

	weak := []string{"short1A", "alllowercase1", "ALLUPPERCASE1", "NoNumbersHere"}
	for _, pw := range weak {
		require.Error(t, ValidateStruct(&passwordProbe{Password: pw}), pw)
	}
}

func TestValidationMessageUsesJSONTag(t *testing.T) {
	err := ValidateStruct(&folderNameProbe{Name: ""})
	require.Error(t, err)
	require.Contains(t, err.Error(), "name is required")
}
