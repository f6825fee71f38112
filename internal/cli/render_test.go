package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/taoyao-code/omnicure/internal/protocol/omnicure"
)

const wantDirectiveP3 = "\n\n" +
	"Copy/paste following command to set omnicure intensity to 50\n" +
	"\n\t$strtask4=\"SIL504E\"\n\tCall omniSetInt P3\n" +
	"\nTo turn on omnicure use the following command\n\t`Call omniOn P3`\n" +
	"\nTo turn off omnicure use the following command\n\t`Call omniOff P3`\n" +
	"\n\n"

func TestWriteDirectiveText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDirectiveText(&buf, omnicure.BuildIntensityDirective(3, 50, false)))
	assert.Equal(t, wantDirectiveP3, buf.String())
}

func TestWriteDirectiveText_Calibrated(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDirectiveText(&buf, omnicure.BuildIntensityDirective(1, 12.5, true)))
	assert.Contains(t, buf.String(), "intensity to 12.5\n")
	assert.Contains(t, buf.String(), "\t$strtask4=\""+omnicure.EncodePayload("SIR12.50")+"\"\n")
}

func TestWriteMissing(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMissing(&buf, "COM port"))
	assert.Equal(t, "\n\nCOM port value is missing.\n\n\tExample command: `omnicure --com_port=1 --intensity=50`\n\n\n\n", buf.String())
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]string{"": FormatText, "text": FormatText, "JSON": FormatJSON, " yaml ": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("xml")
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestRender_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatYAML, omnicure.BuildIntensityDirective(3, 50, false)))

	var got omnicure.Directive
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "SIL504E", got.Payload)
	assert.Equal(t, "Call omniSetInt P3", got.SetIntCall)
	assert.True(t, strings.HasPrefix(buf.String(), "port: 3\n"))
}

func TestRender_Unsupported(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Render(&buf, FormatText, 42))
}

func TestNewVerifyResult(t *testing.T) {
	res := NewVerifyResult("SIR50.007E")
	assert.True(t, res.Valid)
	assert.Equal(t, "calibrated", res.Mode)
	assert.Equal(t, 50.0, res.Intensity)
	assert.Empty(t, res.Error)

	res = NewVerifyResult("SIL50FF")
	assert.False(t, res.Valid)
	assert.Contains(t, res.Error, "checksum mismatch")
}
