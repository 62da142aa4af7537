package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/tanzil/mushaf/layout"
	"github.com/tanzil/mushaf/renderer"
	canvasrenderer "github.com/tanzil/mushaf/renderer/canvas"
	"github.com/tanzil/mushaf/text"
)

func main() {
	cmd := &cli.Command{
		Name:  "mushaf",
		Usage: "fit and render fixed-layout mushaf pages",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "profile", Aliases: []string{"p"}, Value: "examples/madani.mushaf", Usage: "layout profile path"},
			&cli.StringFlag{Name: "pages", Value: "1", Usage: "page selection, e.g. \"3\", \"1-10\", \"1,5,9-12\""},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "enable debug logging"},
		},
		Commands: []*cli.Command{
			{
				Name:  "render",
				Usage: "render the selected pages to a PDF",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "output/mushaf.pdf", Usage: "PDF output path"},
					&cli.StringFlag{Name: "debug", Usage: "also write fitted-page debug JSON to this path"},
				},
				Action: runRender,
			},
			{
				Name:   "fit",
				Usage:  "fit the selected pages and write the debug JSON",
				Flags:  []cli.Flag{&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "output/fit.json", Usage: "JSON output path"}},
				Action: runFit,
			},
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "mushaf: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(cmd *cli.Command) (*zap.Logger, error) {
	if cmd.Bool("verbose") {
		return zap.NewDevelopment()
	}
	return zap.NewNop(), nil
}

// buildResult 串联配置解析、取文、拟合：profile → provider → pages → Result。
// The returned renderer already holds the measured font faces and can paint
// the result directly.
func buildResult(ctx context.Context, cmd *cli.Command) (result *layout.Result, r *canvasrenderer.Renderer, err error) {
	log, err := newLogger(cmd)
	if err != nil {
		return nil, nil, err
	}
	defer log.Sync() //nolint:errcheck

	profilePath := cmd.String("profile")
	file, err := os.Open(profilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("无法打开 profile 文件 %s: %w", profilePath, err)
	}
	profile, err := layout.LoadProfile(file)
	file.Close()
	if err != nil {
		return nil, nil, fmt.Errorf("解析 profile 失败: %w", err)
	}
	baseDir := filepath.Dir(profilePath)

	numbers, err := parsePageSelection(cmd.String("pages"))
	if err != nil {
		return nil, nil, err
	}

	provider, closeProvider, err := text.Open(profile.Source, baseDir, log)
	if err != nil {
		return nil, nil, fmt.Errorf("打开页面文本源失败: %w", err)
	}
	defer func() { err = multierr.Append(err, closeProvider()) }()

	r = canvasrenderer.NewRenderer(baseDir)
	result = &layout.Result{Profile: profile}
	for _, n := range numbers {
		page := layout.AssemblePage(ctx, provider, n, profile.Markers)
		fitted := layout.FitPage(page, profile, r)
		result.Pages = append(result.Pages, fitted)
		log.Debug("page fitted", zap.Int("page", n))
	}
	return result, r, err
}

func runRender(ctx context.Context, cmd *cli.Command) error {
	result, cr, err := buildResult(ctx, cmd)
	if err != nil {
		return err
	}

	if debugPath := cmd.String("debug"); debugPath != "" {
		if err := writeDebug(result, debugPath); err != nil {
			return err
		}
	}

	var r renderer.Renderer = cr
	pdfBytes, err := r.Render(result)
	if err != nil {
		return fmt.Errorf("渲染 PDF 失败: %w", err)
	}

	outputPath := cmd.String("out")
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(outputPath, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("写入 PDF 文件失败: %w", err)
	}
	fmt.Printf("已生成 PDF：%s\n", outputPath)
	return nil
}

func runFit(ctx context.Context, cmd *cli.Command) error {
	result, _, err := buildResult(ctx, cmd)
	if err != nil {
		return err
	}
	outputPath := cmd.String("out")
	if err := writeDebug(result, outputPath); err != nil {
		return err
	}
	fmt.Printf("已生成拟合 JSON：%s\n", outputPath)
	return nil
}

func writeDebug(result *layout.Result, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(result, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}

// parsePageSelection expands "1,5,9-12" into an ordered page-number list.
func parsePageSelection(sel string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(sel, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, ok := strings.Cut(part, "-")
		from, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("invalid page selection %q: %w", part, err)
		}
		to := from
		if ok {
			if to, err = strconv.Atoi(strings.TrimSpace(hi)); err != nil {
				return nil, fmt.Errorf("invalid page selection %q: %w", part, err)
			}
		}
		if from < 1 || to > layout.PageCount || from > to {
			return nil, fmt.Errorf("page selection %q outside [1, %d]", part, layout.PageCount)
		}
		for n := from; n <= to; n++ {
			out = append(out, n)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty page selection")
	}
	return out, nil
}
