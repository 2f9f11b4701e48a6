// Package mcast 提供可靠 UDP 多播消息传输的发送侧流控子系统
//
// 接收方周期性上报状态消息（已消费位置 + 接收窗口），流控策略
// 据此计算发送方允许发布到的上限（snd-lmt），并通过超时剔除
// 决定何时遗忘一个接收方。
//
// # 策略
//
//   - Max：跟随最快接收方，从不下压（单播默认）
//   - Min：跟随最慢存活接收方（多播慢者优先）
//   - Tagged：仅跟踪携带指定组标签的接收方
//
// 策略由通道 URI 的 fc 参数选择与参数化：
//
//	fc=<策略名>(,g:<int32>)?(,t:<时长>)?
//
// # 模块组织
//
//   - pkg/types                  基础类型与流位置运算
//   - pkg/interfaces/flowcontrol 策略接口与构造契约
//   - internal/protocol          状态消息编解码
//   - internal/core/flowcontrol  台账、策略、配置串解析、注册表
//   - internal/core/sender       发送通道（snd-lmt 的归属方）
package mcast
