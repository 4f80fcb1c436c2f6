// Package testutil 提供测试辅助工具
package testutil

import (
	"context"
	"errors"

	ecomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// FakeChatModel 脚本化的 ChatModel 测试替身
// 用于在不访问真实推理服务的情况下测试抽取流程
type FakeChatModel struct {
	Response string             // Generate 返回的文本
	Err      error              // 非 nil 时 Generate 直接返回该错误
	Calls    [][]*schema.Message // 记录每次调用的输入消息
}

// 确保 FakeChatModel 实现了接口
var _ ecomodel.BaseChatModel = (*FakeChatModel)(nil)

// Generate 返回脚本化的响应
func (m *FakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...ecomodel.Option) (*schema.Message, error) {
	m.Calls = append(m.Calls, input)
	if m.Err != nil {
		return nil, m.Err
	}
	return &schema.Message{Role: schema.Assistant, Content: m.Response}, nil
}

// Stream 未脚本化，直接返回错误
func (m *FakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...ecomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not supported in fake")
}
