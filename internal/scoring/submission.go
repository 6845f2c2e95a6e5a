package scoring

import (
	"net/url"
	"strings"
)

// FormKeyPrefix 测验页面表单中答案字段的前缀
const FormKeyPrefix = "question_"

// ParseFormAnswers 从表单中提取 question_<id> 字段，重复字段只取第一个值
func ParseFormAnswers(form url.Values) Submission {
	sub := make(Submission)
	for key, values := range form {
		id, ok := strings.CutPrefix(key, FormKeyPrefix)
		if !ok || id == "" || len(values) == 0 {
			continue
		}
		sub[id] = values[0]
	}
	return sub
}
