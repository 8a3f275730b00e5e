// Package organizer sorts the immediate files of a directory into category
// subfolders chosen by file extension.
//
// A run is a single, synchronous, non-recursive pass over the entries listed
// when the run starts. Folder-creation and move failures are reported per
// entry and never stop the pass; only a missing target directory aborts it.
package organizer

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/moyu-x/file-organizer/pkg/classifier"
	"github.com/moyu-x/file-organizer/pkg/logger"
	"github.com/moyu-x/file-organizer/pkg/scanner"
)

// ErrDirectoryNotFound 目标目录不存在或不是目录
var ErrDirectoryNotFound = errors.New("directory does not exist")

// Options 整理选项
type Options struct {
	Table    *classifier.Table
	Conflict ConflictPolicy
	Sniff    bool     // 没有扩展名时按文件内容识别
	DryRun   bool     // 只报告计划，不修改文件系统
	Exclude  []string // 跳过的文件名
}

// Organizer 按扩展名将目录中的文件移动到分类子目录
type Organizer struct {
	fs       afero.Fs
	scanner  *scanner.DirScanner
	table    *classifier.Table
	reporter Reporter
	opts     Options
	exclude  map[string]bool
}

// New 创建 Organizer，Table 为空时使用默认分类表，reporter 为空时丢弃事件
func New(fs afero.Fs, reporter Reporter, opts Options) *Organizer {
	if opts.Table == nil {
		opts.Table = classifier.DefaultTable()
	}
	if opts.Conflict == "" {
		opts.Conflict = ConflictReplace
	}
	if reporter == nil {
		reporter = ReporterFunc(func(Event) {})
	}

	exclude := make(map[string]bool, len(opts.Exclude))
	for _, name := range opts.Exclude {
		exclude[name] = true
	}

	return &Organizer{
		fs:       fs,
		scanner:  scanner.NewDirScanner(fs),
		table:    opts.Table,
		reporter: reporter,
		opts:     opts,
		exclude:  exclude,
	}
}

// run 单次整理的状态
type run struct {
	directory string
	result    *Result
	ready     map[string]bool // 已确认存在的分类目录
	failed    map[string]bool // 创建失败的分类目录
}

// Organize 整理 directory 的直接子文件
// 目录不存在时报告一次 DirectoryNotFound 并返回 ErrDirectoryNotFound，不做任何修改
func (o *Organizer) Organize(directory string) (*Result, error) {
	ok, err := o.scanner.IsDir(directory)
	if err != nil {
		logger.Get().Debug().Err(err).Str("directory", directory).Msg("检查目录失败")
	}
	if err != nil || !ok {
		o.reporter.Report(Event{Kind: EventDirectoryNotFound, Directory: directory, Err: err})
		return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, directory)
	}

	entries, err := o.scanner.List(directory)
	if err != nil {
		return nil, fmt.Errorf("扫描目录失败: %w", err)
	}

	r := &run{
		directory: directory,
		result:    newResult(directory, o.opts.DryRun),
		ready:     make(map[string]bool),
		failed:    make(map[string]bool),
	}

	for _, entry := range entries {
		r.result.Scanned++

		if entry.Kind != scanner.KindFile {
			r.result.Ignored++
			logger.Get().Debug().Str("entry", entry.Name).Str("kind", entry.Kind.String()).Msg("跳过非文件项")
			continue
		}
		if o.exclude[entry.Name] {
			r.result.Ignored++
			logger.Get().Debug().Str("entry", entry.Name).Msg("跳过排除的文件")
			continue
		}

		o.processEntry(r, entry)
	}

	return r.result, nil
}

// processEntry 处理单个文件，任何错误都转换为事件，不会中断整个过程
func (o *Organizer) processEntry(r *run, entry scanner.Entry) {
	category := o.classify(entry)
	folder := filepath.Join(r.directory, category)

	if r.failed[category] {
		reason := fmt.Sprintf("folder %s unavailable", folder)
		o.reporter.Report(Event{Kind: EventFileSkipped, Directory: r.directory, Name: entry.Name, Category: category, Reason: reason})
		r.result.add(entry.Name, category, OutcomeFolderCreateFailed, nil)
		return
	}

	if !r.ready[category] {
		created, err := o.ensureFolder(folder)
		if err != nil {
			r.failed[category] = true
			o.reporter.Report(Event{Kind: EventFolderCreateFailed, Directory: r.directory, Category: category, Path: folder, Err: err})
			r.result.add(entry.Name, category, OutcomeFolderCreateFailed, err)
			return
		}
		r.ready[category] = true
		if created {
			r.result.FoldersCreated = append(r.result.FoldersCreated, folder)
			o.reporter.Report(Event{Kind: EventFolderCreated, Directory: r.directory, Category: category, Path: folder, DryRun: o.opts.DryRun})
		}
	}

	target, skip, err := o.resolveTarget(filepath.Join(folder, entry.Name))
	if err != nil {
		o.reporter.Report(Event{Kind: EventMoveFailed, Directory: r.directory, Name: entry.Name, Category: category, Err: err})
		r.result.add(entry.Name, category, OutcomeMoveFailed, err)
		return
	}
	if skip {
		o.reporter.Report(Event{Kind: EventFileSkipped, Directory: r.directory, Name: entry.Name, Category: category, Reason: "destination exists"})
		r.result.add(entry.Name, category, OutcomeSkipped, nil)
		return
	}

	if !o.opts.DryRun {
		if err := o.moveFile(entry.Path, target); err != nil {
			o.reporter.Report(Event{Kind: EventMoveFailed, Directory: r.directory, Name: entry.Name, Category: category, Err: err})
			r.result.add(entry.Name, category, OutcomeMoveFailed, err)
			return
		}
	}

	o.reporter.Report(Event{Kind: EventFileMoved, Directory: r.directory, Name: entry.Name, Category: category, Path: target, DryRun: o.opts.DryRun})
	r.result.add(entry.Name, category, OutcomeMoved, nil)
}

// classify 按扩展名分类；开启内容识别时，没有扩展名的文件按文件头判断
func (o *Organizer) classify(entry scanner.Entry) string {
	ext := entry.Extension
	if ext == "" && o.opts.Sniff {
		sniffed, err := classifier.SniffExtension(o.fs, entry.Path)
		if err != nil {
			logger.Get().Debug().Err(err).Str("file", entry.Name).Msg("内容识别失败")
		}
		ext = sniffed
	}
	return o.table.Classify(ext)
}
