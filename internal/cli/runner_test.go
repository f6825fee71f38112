package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	cfgpkg "github.com/taoyao-code/omnicure/internal/config"
	"github.com/taoyao-code/omnicure/internal/protocol/omnicure"
)

type runResult struct {
	code   int
	stdout string
	stderr string
}

func runArgs(t *testing.T, cfg *cfgpkg.Config, args ...string) runResult {
	t.Helper()
	var usage bytes.Buffer
	opts, err := Parse(args, &usage)
	require.NoError(t, err)

	var stdout, stderr bytes.Buffer
	code := NewRunner(cfg, zap.NewNop(), &stdout, &stderr).Run(opts)
	return runResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestRun_Directive(t *testing.T) {
	res := runArgs(t, nil, "--com_port=3", "--intensity=50")
	assert.Equal(t, ExitOK, res.code)
	assert.Equal(t, wantDirectiveP3, res.stdout)
	assert.Contains(t, res.stdout, "Call omniSetInt P3")
	assert.Contains(t, res.stdout, `$strtask4="`+omnicure.EncodePayload("SIL50")+`"`)
	assert.Empty(t, res.stderr)
}

func TestRun_MissingComPort(t *testing.T) {
	res := runArgs(t, nil, "--intensity=50")
	assert.Equal(t, ExitOK, res.code, "缺少参数仍以0退出")
	assert.Contains(t, res.stdout, "COM port value is missing.")
	assert.Contains(t, res.stdout, "--com_port=1 --intensity=50")
	assert.NotContains(t, res.stdout, "Copy/paste")
}

func TestRun_MissingIntensity(t *testing.T) {
	res := runArgs(t, nil, "-P", "1")
	assert.Equal(t, ExitOK, res.code)
	assert.Contains(t, res.stdout, "Intensity value is missing.")
	assert.Contains(t, res.stdout, "--com_port=1 --intensity=50")
}

// 两者都缺时只提示 COM port
func TestRun_MissingBoth(t *testing.T) {
	res := runArgs(t, nil)
	assert.Equal(t, ExitOK, res.code)
	assert.Contains(t, res.stdout, "COM port value is missing.")
	assert.NotContains(t, res.stdout, "Intensity value is missing.")
}

func TestRun_Calibrated(t *testing.T) {
	res := runArgs(t, nil, "-P", "2", "-I", "50", "--calibrated")
	assert.Equal(t, ExitOK, res.code)
	assert.Contains(t, res.stdout, `$strtask4="SIR50.007E"`)
	assert.Contains(t, res.stdout, "Call omniSetInt P2")
}

func TestRun_RawRejectsFraction(t *testing.T) {
	res := runArgs(t, nil, "-P", "2", "-I", "50.5")
	assert.Equal(t, ExitUsage, res.code)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "raw intensity must be an integer")
}

// 默认不检查范围
func TestRun_OutOfRangeAccepted(t *testing.T) {
	res := runArgs(t, nil, "-P", "1", "-I", "150")
	assert.Equal(t, ExitOK, res.code)
	assert.Contains(t, res.stdout, `"`+omnicure.EncodePayload("SIL150")+`"`)
}

func TestRun_Strict(t *testing.T) {
	res := runArgs(t, nil, "-P", "1", "-I", "150", "--strict")
	assert.Equal(t, ExitFailure, res.code)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "intensity out of range")

	cfg := &cfgpkg.Config{Omnicure: cfgpkg.OmnicureConfig{Strict: true}}
	res = runArgs(t, cfg, "-P", "1", "-I", "-1")
	assert.Equal(t, ExitFailure, res.code)

	res = runArgs(t, cfg, "-P", "1", "-I", "100")
	assert.Equal(t, ExitOK, res.code)
}

func TestRun_JSON(t *testing.T) {
	res := runArgs(t, nil, "-P", "3", "-I", "50", "-f", "json")
	require.Equal(t, ExitOK, res.code)

	var d omnicure.Directive
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &d))
	assert.Equal(t, *omnicure.BuildIntensityDirective(3, 50, false), d)
}

func TestRun_FormatFromConfig(t *testing.T) {
	cfg := &cfgpkg.Config{Output: cfgpkg.OutputConfig{Format: "yaml"}}
	res := runArgs(t, cfg, "-P", "3", "-I", "50")
	require.Equal(t, ExitOK, res.code)
	assert.Contains(t, res.stdout, "payload: SIL504E")

	// 命令行优先于配置
	res = runArgs(t, cfg, "-P", "3", "-I", "50", "--format", "text")
	assert.Equal(t, wantDirectiveP3, res.stdout)
}

func TestRun_UnknownFormat(t *testing.T) {
	res := runArgs(t, nil, "-P", "3", "-I", "50", "--format", "xml")
	assert.Equal(t, ExitUsage, res.code)
	assert.Contains(t, res.stderr, "unknown output format")
}

func TestRun_Verify(t *testing.T) {
	res := runArgs(t, nil, "--verify", "SIL504E")
	assert.Equal(t, ExitOK, res.code)
	assert.Equal(t, "Payload SIL504E is valid: raw intensity 50\n", res.stdout)

	res = runArgs(t, nil, "--verify", "SIL50FF")
	assert.Equal(t, ExitFailure, res.code)
	assert.Contains(t, res.stdout, "Payload SIL50FF is invalid: checksum mismatch")

	res = runArgs(t, nil, "--verify", "SIR50.007E", "--format", "json")
	require.Equal(t, ExitOK, res.code)
	var vr VerifyResult
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &vr))
	assert.True(t, vr.Valid)
	assert.Equal(t, "calibrated", vr.Mode)
}

func TestRun_Logging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	opts, err := Parse([]string{"-P", "3", "-I", "50"}, &bytes.Buffer{})
	require.NoError(t, err)

	var stdout bytes.Buffer
	code := NewRunner(nil, zap.New(core), &stdout, &bytes.Buffer{}).Run(opts)
	require.Equal(t, ExitOK, code)

	entries := logs.FilterMessage("directive built").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "SIL504E", entries[0].ContextMap()["payload"])

	opts, err = Parse(nil, &bytes.Buffer{})
	require.NoError(t, err)
	NewRunner(nil, zap.New(core), &stdout, &bytes.Buffer{}).Run(opts)
	assert.Equal(t, 1, logs.FilterMessage("missing argument").Len())
}
