// Package node
// 模块名: 节点
// 功能描述: 用于提供程序入口,按配置启动对象池运行时和调试http服务
// 作者:  yr  2024/1/10 0010 23:43
// 最后更新:  yr  2025/8/2
package node

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/njtc406/emberpool/engine/pkg/catalog"
	"github.com/njtc406/emberpool/engine/pkg/config"
	"github.com/njtc406/emberpool/engine/pkg/runtime"
	"github.com/njtc406/emberpool/engine/pkg/sysModule/httpmodule"
	"github.com/njtc406/emberpool/engine/pkg/utils/log"
	"github.com/njtc406/emberpool/engine/pkg/utils/pid"
	"github.com/njtc406/emberpool/engine/pkg/utils/version"
)

const pidName = "emberpool"

var exitCh = make(chan os.Signal, 1)

func init() {
	// 注册退出信号
	signal.Notify(exitCh, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT)
}

// HookFun 运行时启动之后执行,在主循环之外调用,访问对象池需要通过Post/Call
type HookFun func(rt *runtime.Runtime)

type StartParam struct {
	Version     string
	ConfPath    string
	Definitions []catalog.Definition
	Hooks       []HookFun
}

type StartOption func(*StartParam)

func WithVersion(v string) StartOption {
	return func(p *StartParam) {
		p.Version = v
	}
}

func WithConfPath(confPath string) StartOption {
	return func(p *StartParam) {
		p.ConfPath = confPath
	}
}

// WithDefinitions 代码注册的资源类型,和目录文件里的合并(目录文件在前)
func WithDefinitions(defs ...catalog.Definition) StartOption {
	return func(p *StartParam) {
		p.Definitions = append(p.Definitions, defs...)
	}
}

func WithHooks(hooks ...HookFun) StartOption {
	return func(p *StartParam) {
		p.Hooks = append(p.Hooks, hooks...)
	}
}

func Start(opts ...StartOption) {
	startTime := time.Now()
	param := StartParam{Version: version.Version}
	for _, f := range opts {
		f(&param)
	}

	// 初始化配置
	config.Init(param.ConfPath)

	// 初始化日志
	log.Init(config.Conf.Logger, config.IsDebug())
	log.SysLogger.Infof("==================>>emberpool %s starting<<==================", param.Version)

	// 记录pid
	if config.Conf.CachePath != "" {
		if err := pid.RecordPID(config.Conf.CachePath, pidName); err != nil {
			log.SysLogger.Warnf("record pid failed: %v", err)
		}
		defer pid.DeletePID(config.Conf.CachePath, pidName)
	}

	// 资源类型
	var defs []catalog.Definition
	if file := config.CatalogPath(param.ConfPath, config.Conf.Pool); file != "" {
		fileDefs, err := catalog.LoadFile(file)
		if err != nil {
			log.SysLogger.Panic(err)
		}
		defs = append(defs, fileDefs...)
	}
	defs = append(defs, param.Definitions...)

	// 运行时
	rt, err := runtime.New(config.Conf.Pool, runtime.WithLogger(log.SysLogger))
	if err != nil {
		log.SysLogger.Panic(err)
	}
	if err = rt.Init(defs); err != nil {
		log.SysLogger.Panic(err)
	}
	if err = rt.Start(); err != nil {
		log.SysLogger.Panic(err)
	}

	// 调试http服务
	var hs *httpmodule.HttpModule
	if config.Conf.Http.Enable {
		hs = httpmodule.NewHttpModule(config.Conf.Http, rt, rt.Collector().Handler(), log.SysLogger, config.GetStatus())
		if err = hs.Start(); err != nil {
			log.SysLogger.Panic(err)
		}
	}

	// 执行钩子
	for _, f := range param.Hooks {
		f(rt)
	}

	// 监听退出信号
	sig := <-exitCh
	log.SysLogger.Infof("-------------->>received the signal: %v", sig)

	log.SysLogger.Info("==================>>begin stop modules<<==================")
	if hs != nil {
		hs.Stop()
	}
	rt.Stop()
	log.SysLogger.Infof("server stopped after %s, program exited...", time.Since(startTime).Truncate(time.Second))
	log.Close()
}
