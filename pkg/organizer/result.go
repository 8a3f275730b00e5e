package organizer

import "sort"

// Outcome 单个文件的最终状态
type Outcome int

const (
	OutcomeMoved Outcome = iota
	OutcomeFolderCreateFailed
	OutcomeMoveFailed
	OutcomeSkipped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMoved:
		return "moved"
	case OutcomeFolderCreateFailed:
		return "folder_create_failed"
	case OutcomeMoveFailed:
		return "move_failed"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// EntryResult 单个文件的处理结果
type EntryResult struct {
	Name     string
	Category string
	Outcome  Outcome
	Err      error
}

// Result 一次整理的汇总
type Result struct {
	Directory      string
	DryRun         bool
	Scanned        int // 目录项总数
	Ignored        int // 子目录、排除项等未处理的目录项
	Moved          int
	Failed         int
	Skipped        int
	FoldersCreated []string
	Entries        []EntryResult
}

func newResult(directory string, dryRun bool) *Result {
	return &Result{Directory: directory, DryRun: dryRun}
}

func (r *Result) add(name, category string, outcome Outcome, err error) {
	r.Entries = append(r.Entries, EntryResult{Name: name, Category: category, Outcome: outcome, Err: err})
	switch outcome {
	case OutcomeMoved:
		r.Moved++
	case OutcomeSkipped:
		r.Skipped++
	default:
		r.Failed++
	}
}

// CategoryCount 某个分类下各状态的文件数
type CategoryCount struct {
	Category string
	Moved    int
	Failed   int
	Skipped  int
}

// ByCategory 按分类名称排序返回统计
func (r *Result) ByCategory() []CategoryCount {
	counts := make(map[string]*CategoryCount)
	for _, e := range r.Entries {
		c, ok := counts[e.Category]
		if !ok {
			c = &CategoryCount{Category: e.Category}
			counts[e.Category] = c
		}
		switch e.Outcome {
		case OutcomeMoved:
			c.Moved++
		case OutcomeSkipped:
			c.Skipped++
		default:
			c.Failed++
		}
	}

	out := make([]CategoryCount, 0, len(counts))
	for _, c := range counts {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}
