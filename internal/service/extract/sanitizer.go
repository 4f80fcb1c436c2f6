package extract

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/ashwinyue/next-indexer/internal/model"
)

// Draft 抽取产出的工具草稿（未持久化）
// 每个字段独立清洗并带默认值，保存前由调用方补充校验
type Draft struct {
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	Website        string   `json:"website"`
	Description    string   `json:"description"`
	UseCase        string   `json:"use_case"`
	Tags           []string `json:"tags"`
	RelevanceScore int      `json:"relevance_score"`
	SourceLink     string   `json:"source_link"`
}

// Sanitize 将模型的原始文本响应清洗为工具草稿
// 仅整体解析失败是致命错误；字段级异常一律降级为安全默认值
func Sanitize(raw string) (*Draft, error) {
	cleaned := stripCodeFences(raw)

	// 模型输出的 JSON 常有缺引号、缺括号等问题，先尝试修复
	if repaired, err := jsonrepair.JSONRepair(cleaned); err == nil {
		cleaned = repaired
	}

	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailure, err)
	}

	category := coerceString(fields["category"])
	if !model.IsValidCategory(category) {
		category = model.CategoryOther
	}

	return &Draft{
		Name:           coerceString(fields["name"]),
		Category:       category,
		Website:        coerceString(fields["website"]),
		Description:    coerceString(fields["description"]),
		UseCase:        coerceString(fields["use_case"]),
		Tags:           coerceTags(fields["tags"]),
		RelevanceScore: clampScore(coerceInt(fields["relevance_score"], 3)),
		SourceLink:     coerceString(fields["source_link"]),
	}, nil
}

// stripCodeFences 去除模型输出首尾的 Markdown 代码围栏
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = s[7:]
	} else if strings.HasPrefix(s, "```") {
		s = s[3:]
	}
	if strings.HasSuffix(s, "```") {
		s = s[:len(s)-3]
	}
	return strings.TrimSpace(s)
}

// coerceString 将任意 JSON 值转为去除首尾空白的字符串，缺失返回空串
func coerceString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// coerceInt 将任意 JSON 值转为整数，无法解析时返回默认值
func coerceInt(v interface{}, def int) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n
		}
		return def
	default:
		return def
	}
}

// coerceTags 仅接受数组形式的标签，逐项转为字符串并丢弃空项
func coerceTags(v interface{}) []string {
	arr, ok := v.([]interface{})
	if !ok {
		return []string{}
	}
	tags := make([]string, 0, len(arr))
	for _, item := range arr {
		if t := coerceString(item); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// clampScore 将评分夹取到 [1,5]
// 与持久化边界的严格拒绝不同，抽取边界对越界值做收敛
func clampScore(score int) int {
	if score < 1 {
		return 1
	}
	if score > 5 {
		return 5
	}
	return score
}
