package book

import (
	"math/rand/v2"
)

// shuffleStream PCG的第二个种子,固定值保证同一nonce得到同一排列
const shuffleStream = 0x9e3779b97f4a7c15

// ShuffleTies 在排序键相同的连续区间内打乱顺序
//
// 设计说明:
// 1. Query的比较器不读取ShuffleNonce,默认情况下"随机"操作不会改变结果
// 2. 开启catalog.shuffle_ties后,应用层在Query之后调用本函数
// 3. 只交换排序键相等的图书,排序结果依然满足比较器
// 4. nonce为0时不打乱(会话初始状态与默认行为一致);同一nonce总是得到同一排列
//
// 输入必须是已按key排好序的列表(即Query的输出),返回新切片,不修改输入
func ShuffleTies(sorted []*Book, key SortKey, nonce uint64) []*Book {
	out := make([]*Book, len(sorted))
	copy(out, sorted)
	if nonce == 0 || len(out) < 2 {
		return out
	}

	rng := rand.New(rand.NewPCG(nonce, shuffleStream))
	compare := key.compare()

	start := 0
	for i := 1; i <= len(out); i++ {
		if i < len(out) && compare(out[start], out[i]) == 0 {
			continue
		}
		// [start, i) 是一段排序键相等的区间
		run := out[start:i]
		rng.Shuffle(len(run), func(a, b int) {
			run[a], run[b] = run[b], run[a]
		})
		start = i
	}

	return out
}
