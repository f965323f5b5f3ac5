package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"shiftdesk/internal/dto"
	"shiftdesk/internal/report"
	"shiftdesk/internal/service"
)

// rangeFlags 报表命令共用的期间与输出参数
type rangeFlags struct {
	from    string
	to      string
	formats string
	outDir  string
}

func (f *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "开始日期 YYYY-MM-DD")
	cmd.Flags().StringVar(&f.to, "to", "", "结束日期 YYYY-MM-DD")
	cmd.Flags().StringVar(&f.formats, "format", "", "导出格式，逗号分隔：pdf,xlsx,csv（为空时只打印汇总）")
	cmd.Flags().StringVarP(&f.outDir, "out", "o", ".", "导出目录")
}

func newDepartmentCmd(app *App) *cobra.Command {
	var department string
	var rf rangeFlags
	var sf sourceFlags

	cmd := &cobra.Command{
		Use:   "department",
		Short: "生成部门工时报表",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := app.reportService(&sf)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := cmd.Context()
			cred := sf.credential()
			req := dto.DepartmentReportRequest{Department: department, StartDate: rf.from, EndDate: rf.to}

			resp, err := svc.DepartmentReport(ctx, cred, &req)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printDepartment(out, resp)

			return exportAll(ctx, out, rf, func(ctx context.Context, format string) (*service.ExportFile, error) {
				return svc.ExportDepartmentReport(ctx, cred, &dto.ExportDepartmentReportRequest{
					DepartmentReportRequest: req,
					Format:                  format,
				})
			})
		},
	}

	cmd.Flags().StringVarP(&department, "department", "d", "", "部门名称")
	rf.register(cmd)
	sf.register(cmd)
	return cmd
}

func newEmployeeCmd(app *App) *cobra.Command {
	var employee string
	var rf rangeFlags
	var sf sourceFlags

	cmd := &cobra.Command{
		Use:   "employee",
		Short: "生成个人工时明细",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := app.reportService(&sf)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := cmd.Context()
			cred := sf.credential()
			req := dto.EmployeeReportRequest{Employee: employee, StartDate: rf.from, EndDate: rf.to}

			resp, err := svc.EmployeeReport(ctx, cred, &req)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printEmployee(out, resp)

			return exportAll(ctx, out, rf, func(ctx context.Context, format string) (*service.ExportFile, error) {
				return svc.ExportEmployeeReport(ctx, cred, &dto.ExportEmployeeReportRequest{
					EmployeeReportRequest: req,
					Format:                format,
				})
			})
		},
	}

	cmd.Flags().StringVarP(&employee, "employee", "e", "", "员工 ID、账号 ID 或姓名")
	rf.register(cmd)
	sf.register(cmd)
	return cmd
}

func newDepartmentsCmd(app *App) *cobra.Command {
	var sf sourceFlags

	cmd := &cobra.Command{
		Use:   "departments",
		Short: "列出员工目录中的部门",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := app.reportService(&sf)
			if err != nil {
				return err
			}
			defer cleanup()

			resp, err := svc.Departments(cmd.Context(), sf.credential())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, d := range resp.List {
				fmt.Fprintln(out, d)
			}
			warnEmployeeError(out, resp.EmployeeError)
			return nil
		},
	}

	sf.register(cmd)
	return cmd
}

// ── 导出 ──

type exportFunc func(ctx context.Context, format string) (*service.ExportFile, error)

func exportAll(ctx context.Context, out io.Writer, rf rangeFlags, export exportFunc) error {
	formats := splitFormats(rf.formats)
	if len(formats) == 0 {
		return nil
	}
	if err := os.MkdirAll(rf.outDir, 0o755); err != nil {
		return fmt.Errorf("创建导出目录失败: %w", err)
	}

	for _, format := range formats {
		file, err := export(ctx, format)
		if err != nil {
			return fmt.Errorf("导出 %s 失败: %w", format, err)
		}
		path := filepath.Join(rf.outDir, file.Filename)
		if err := os.WriteFile(path, file.Data.Bytes(), 0o644); err != nil {
			return fmt.Errorf("写入 %s 失败: %w", path, err)
		}
		fmt.Fprintf(out, "已写入 %s\n", path)
	}
	return nil
}

// splitFormats 解析逗号分隔的格式列表，去重并保持顺序
func splitFormats(s string) []string {
	var formats []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		formats = append(formats, f)
	}
	return formats
}

// ── 终端输出 ──

func printDepartment(out io.Writer, resp *dto.DepartmentReportResponse) {
	fmt.Fprintf(out, "%s  %s ~ %s\n\n", resp.Department, resp.StartDate, resp.EndDate)
	if resp.Report == nil {
		fmt.Fprintln(out, resp.Message)
		warnEmployeeError(out, resp.EmployeeError)
		return
	}

	rows := make([][]string, 0, len(resp.Report.Rows))
	for _, r := range resp.Report.Rows {
		rows = append(rows, []string{r.Employee, r.Department, r.Position, hours(r.TotalHours), strconv.Itoa(r.Shifts)})
	}
	fmt.Fprint(out, renderTable([]string{"员工", "部门", "岗位", "总工时", "班次"}, rows))

	s := resp.Report.Summary
	fmt.Fprintf(out, "\n总工时 %s  员工数 %d  人均工时 %s\n", hours(s.TotalHours), s.EmployeeCount, hours(s.AverageHours))
	warnEmployeeError(out, resp.EmployeeError)
}

func printEmployee(out io.Writer, resp *dto.EmployeeReportResponse) {
	fmt.Fprintf(out, "%s  %s ~ %s\n\n", resp.Employee, resp.StartDate, resp.EndDate)
	if resp.Report == nil {
		fmt.Fprintln(out, resp.Message)
		warnEmployeeError(out, resp.EmployeeError)
		return
	}

	rows := make([][]string, 0, len(resp.Report.Lines))
	for _, l := range resp.Report.Lines {
		rows = append(rows, []string{l.Date.Format(report.DateLayout), l.Start, l.End, l.Department, l.Position, hours(l.Hours)})
	}
	fmt.Fprint(out, renderTable([]string{"日期", "开始", "结束", "部门", "岗位", "工时"}, rows))

	s := resp.Report.Summary
	fmt.Fprintf(out, "\n总工时 %s  班次 %d  平均每班 %s\n", hours(s.TotalHours), s.ShiftCount, hours(s.AverageHours))
	warnEmployeeError(out, resp.EmployeeError)
}

func warnEmployeeError(out io.Writer, msg string) {
	if msg != "" {
		fmt.Fprintln(out, styleWarn.Render("警告: "+msg))
	}
}

func hours(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
