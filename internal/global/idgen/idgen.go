// Package idgen 生成短小易读的字符串主键：大写字母前缀 + 随机数字后缀，
// 冲突时重新采样，超过最大尝试次数返回 ErrExhausted
package idgen

import (
	"errors"
	"math/rand/v2"
	"strconv"
	"strings"
	"unicode"
)

// MaxAttempts 随机后缀的最大采样次数，超过即放弃
const MaxAttempts = 50

var ErrExhausted = errors.New("idgen: exhausted max attempts without finding a free id")

// PrefixFromSeed 取 seed 去掉空白后的前 n 个字符并转为大写
// seed 不足 n 个字符时返回全部
func PrefixFromSeed(seed string, n int) string {
	var b strings.Builder
	written := 0
	for _, r := range seed {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
		written++
		if written >= n {
			break
		}
	}
	return b.String()
}

// Generate 以 prefix + digits 位随机数字拼出候选 ID，
// 通过 exists 回调检查唯一性，冲突则重新采样
func Generate(prefix string, digits int, exists func(id string) (bool, error)) (string, error) {
	if digits < 1 {
		digits = 1
	}
	low := 1
	for i := 1; i < digits; i++ {
		low *= 10
	}

	for attempt := 0; attempt < MaxAttempts; attempt++ {
		// 后缀范围 [10^(digits-1), 10^digits)，保证固定位数
		suffix := low + rand.IntN(low*9)
		id := prefix + strconv.Itoa(suffix)

		taken, err := exists(id)
		if err != nil {
			return "", err
		}
		if !taken {
			return id, nil
		}
	}
	return "", ErrExhausted
}
