package runner

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	valid := Config{
		Location:      "Caringbah, NSW",
		BusinessTypes: []string{"law firm"},
		Output:        "out.csv",
	}

	require.NoError(t, valid.Validate())

	missingTypes := valid
	missingTypes.BusinessTypes = nil
	require.Error(t, missingTypes.Validate())

	missingLocation := valid
	missingLocation.Location = ""
	require.Error(t, missingLocation.Validate())

	missingOutput := valid
	missingOutput.Output = ""
	require.Error(t, missingOutput.Validate())
}
