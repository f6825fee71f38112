// Package omnicure 生成 OmniCure 紫外固化灯的光强设置指令。
//
// 指令经 Aerotech 运动控制器的宏转发给灯源，格式为：
//
//	SIL<整数>XX      未校准
//	SIR<两位小数>XX  已校准
//
// XX 为指令文本的 CRC8（反射式，多项式 x^8+x^5+x^4+1），两位大写十六进制。
package omnicure
