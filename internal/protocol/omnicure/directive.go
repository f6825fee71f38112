package omnicure

import "strconv"

// Aerotech 控制器侧的宏与变量名
const (
	TaskVariable = "$strtask4"
	MacroSetInt  = "omniSetInt"
	MacroOn      = "omniOn"
	MacroOff     = "omniOff"
)

// Directive 一次光强设置所需的控制器指令
type Directive struct {
	Port       int     `json:"port" yaml:"port"`
	Intensity  float64 `json:"intensity" yaml:"intensity"`
	Mode       string  `json:"mode" yaml:"mode"`
	Command    string  `json:"command" yaml:"command"`
	Checksum   string  `json:"checksum" yaml:"checksum"`
	Payload    string  `json:"payload" yaml:"payload"`
	Assignment string  `json:"assignment" yaml:"assignment"`
	SetIntCall string  `json:"setIntCall" yaml:"setIntCall"`
	OnCall     string  `json:"onCall" yaml:"onCall"`
	OffCall    string  `json:"offCall" yaml:"offCall"`
}

// BuildIntensityDirective 生成光强设置指令
// 输入一律信任，不做范围检查，不会失败
func BuildIntensityDirective(port int, intensity float64, calibrated bool) *Directive {
	cmd := IntensityCommand{Mode: ModeFor(calibrated), Intensity: intensity}
	text := cmd.String()
	sum := Checksum8(text)
	payload := text + FormatChecksum(sum)

	return &Directive{
		Port:       port,
		Intensity:  intensity,
		Mode:       cmd.Mode.String(),
		Command:    text,
		Checksum:   FormatChecksum(sum),
		Payload:    payload,
		Assignment: TaskVariable + `="` + payload + `"`,
		SetIntCall: MacroCall(MacroSetInt, port),
		OnCall:     MacroCall(MacroOn, port),
		OffCall:    MacroCall(MacroOff, port),
	}
}

// MacroCall 生成 "Call <macro> P<port>"
func MacroCall(macro string, port int) string {
	return "Call " + macro + " P" + strconv.Itoa(port)
}

// Code 返回需要复制到控制器的两行代码
func (d *Directive) Code() []string {
	return []string{d.Assignment, d.SetIntCall}
}
