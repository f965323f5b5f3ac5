// Package cli 实现 reportctl 命令行：离线或对接配置的数据源生成工时报表文件
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"shiftdesk/config"
	"shiftdesk/internal/model"
	"shiftdesk/internal/service"
	applogger "shiftdesk/pkg/logger"
	"shiftdesk/pkg/redis"
)

// tokenEnv 未传 --token 时读取的环境变量
const tokenEnv = "SHIFTDESK_TOKEN"

// App 命令共享的依赖；Config 为 nil 时在执行前按 --config 加载
type App struct {
	Config *config.Config
	Logger *zap.Logger

	// OpenSource 打开配置的在线数据源（上游 API 或数据库）
	OpenSource func(cfg *config.Config, logger *zap.Logger) (service.Source, func(), error)
	// OpenRedis 返回 nil 表示 Redis 不可用
	OpenRedis func(cfg *config.RedisConfig, logger *zap.Logger) *redis.Client
}

// NewRootCmd 创建 reportctl 根命令并注册子命令
func NewRootCmd(app *App) *cobra.Command {
	var configPath string
	var verbose bool

	root := &cobra.Command{
		Use:           "reportctl",
		Short:         "按部门或员工生成工时报表（PDF / Excel / CSV）",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.prepare(configPath, verbose)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", os.Getenv("SHIFTDESK_CONFIG"), "配置文件路径")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "输出 info 级别日志")

	root.AddCommand(
		newDepartmentCmd(app),
		newEmployeeCmd(app),
		newDepartmentsCmd(app),
		newTokenCmd(app),
		newRevokeCmd(app),
	)

	return root
}

func (a *App) prepare(configPath string, verbose bool) error {
	if a.Config == nil {
		cfg, err := config.LoadUnvalidated(configPath)
		if err != nil {
			return err
		}
		a.Config = cfg
	}
	if a.Logger == nil {
		// 日志走 stderr，stdout 只输出报表
		logCfg := a.Config.Log
		logCfg.Output = "stderr"
		logCfg.Format = "console"
		if !verbose {
			logCfg.Level = "warn"
		}
		logger, err := applogger.NewLogger(&logCfg)
		if err != nil {
			return err
		}
		a.Logger = logger
	}
	return nil
}

// ── 数据源选择 ──

// sourceFlags 报表命令共用的数据源参数
type sourceFlags struct {
	shiftsFile    string
	employeesFile string
	token         string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.shiftsFile, "shifts", "", "离线排班文件（.csv / .xlsx / .xls）")
	cmd.Flags().StringVar(&f.employeesFile, "employees", "", "离线员工文件（.csv / .xlsx / .xls）")
	cmd.Flags().StringVar(&f.token, "token", "", "上游 API 访问令牌（默认读取 "+tokenEnv+"）")
}

func (f *sourceFlags) credential() model.Credential {
	token := f.token
	if token == "" {
		token = os.Getenv(tokenEnv)
	}
	return model.Credential{Token: token, Subject: "reportctl"}
}

// reportService 构造一次性的报表服务；给出 --shifts 时使用离线文件
func (a *App) reportService(f *sourceFlags) (service.ReportService, func(), error) {
	source, cleanup, err := a.source(f)
	if err != nil {
		return nil, nil, err
	}
	return service.NewService(a.Config, source, nil, a.Logger).Report, cleanup, nil
}

func (a *App) source(f *sourceFlags) (service.Source, func(), error) {
	if f.shiftsFile != "" || f.employeesFile != "" {
		return offlineSource(f)
	}
	if a.OpenSource == nil {
		return nil, nil, fmt.Errorf("未配置在线数据源，请使用 --shifts/--employees 指定离线文件")
	}
	if a.Config.Source.Kind == config.SourceAPI && a.Config.Upstream.BaseURL == "" {
		return nil, nil, fmt.Errorf("upstream.base_url 未配置，请使用 --shifts/--employees 指定离线文件")
	}
	source, cleanup, err := a.OpenSource(a.Config, a.Logger)
	if err != nil {
		return nil, nil, err
	}
	return &memoSource{inner: source}, cleanup, nil
}
