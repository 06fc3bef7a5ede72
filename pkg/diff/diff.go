// Package diff 基于 diff-match-patch 的文本差异计算
package diff

import "github.com/sergi/go-diff/diffmatchpatch"

// Op is one diff operation: type is "equal", "insert" or "delete"
// Op 单个差异片段
type Op struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Result diff from one text to another
// Result 文本差异结果
type Result struct {
	Patch string `json:"patch"` // patch 文本，可用 diff-match-patch 应用
	Ops   []Op   `json:"diffs"`
}

// Texts computes the semantic diff and the patch turning from into to
// Texts 计算从 from 到 to 的差异及补丁
func Texts(from, to string) Result {
	dmp := diffmatchpatch.New()

	diffs := dmp.DiffMain(from, to, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	ops := make([]Op, 0, len(diffs))
	for _, d := range diffs {
		ops = append(ops, Op{Type: opType(d.Type), Text: d.Text})
	}

	patches := dmp.PatchMake(from, diffs)
	return Result{
		Patch: dmp.PatchToText(patches),
		Ops:   ops,
	}
}

// Apply applies patch text to base; ok is false if any hunk failed
// Apply 将补丁应用到 base 上
func Apply(base, patch string) (string, bool, error) {
	dmp := diffmatchpatch.New()

	patches, err := dmp.PatchFromText(patch)
	if err != nil {
		return "", false, err
	}

	out, results := dmp.PatchApply(patches, base)
	for _, ok := range results {
		if !ok {
			return out, false, nil
		}
	}
	return out, true, nil
}

func opType(t diffmatchpatch.Operation) string {
	switch t {
	case diffmatchpatch.DiffInsert:
		return "insert"
	case diffmatchpatch.DiffDelete:
		return "delete"
	default:
		return "equal"
	}
}
