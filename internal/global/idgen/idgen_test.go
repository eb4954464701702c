package idgen_test

import (
	"regexp"
	"testing"

	"activity-tracker-system/internal/global/idgen"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestPrefixFromSeed(t *testing.T) {
	// 取前 n 个非空白字符，不是首字母缩写
	require.Equal(t, "AL", idgen.PrefixFromSeed("Alice Smith", 2))
	require.Equal(t, "WE", idgen.PrefixFromSeed("  weekly sync", 2))
	require.Equal(t, "A", idgen.PrefixFromSeed("a", 2))
	require.Equal(t, "", idgen.PrefixFromSeed("   ", 2))
	require.Equal(t, "B", idgen.PrefixFromSeed("Build dashboard", 1))
}

func TestPrefixFromSeedMultibyte(t *testing.T) {
	// 按字符计数，多字节字符不会被截短
	require.Equal(t, "周报", idgen.PrefixFromSeed("周报 汇总", 2))
	require.Equal(t, "Ü1", idgen.PrefixFromSeed("ü1 test", 2))
}

func TestGenerateShape(t *testing.T) {
	id, err := idgen.Generate("AB", 3, func(string) (bool, error) {
		return false, nil
	})
	require.NoError(t, err)
	require.Regexp(t, regexp.MustCompile(`^AB[1-9]\d{2}$`), id)

	id, err = idgen.Generate("UPD", 5, func(string) (bool, error) {
		return false, nil
	})
	require.NoError(t, err)
	require.Regexp(t, regexp.MustCompile(`^UPD[1-9]\d{4}$`), id)
}

func TestGenerateSkipsTaken(t *testing.T) {
	taken := map[string]bool{}
	// 留一个空位，其它全部视为已占用
	free := "AB500"
	id, err := idgen.Generate("AB", 3, func(candidate string) (bool, error) {
		if candidate == free {
			return false, nil
		}
		taken[candidate] = true
		return true, nil
	})
	if err != nil {
		// 只有一个空位时采样可能耗尽，属于预期行为
		require.ErrorIs(t, err, idgen.ErrExhausted)
		return
	}
	require.Equal(t, free, id)
}

func TestGenerateExhausted(t *testing.T) {
	calls := 0
	_, err := idgen.Generate("AB", 3, func(string) (bool, error) {
		calls++
		return true, nil
	})
	require.ErrorIs(t, err, idgen.ErrExhausted)
	require.Equal(t, idgen.MaxAttempts, calls)
}

func TestGenerateCallbackError(t *testing.T) {
	boom := errors.New("boom")
	_, err := idgen.Generate("AB", 3, func(string) (bool, error) {
		return false, boom
	})
	require.ErrorIs(t, err, boom)
}
