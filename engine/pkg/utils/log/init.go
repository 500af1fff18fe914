package log

// SysLogger 系统日志,未初始化时是一个什么都不输出的日志
var SysLogger = NewDiscard()

var inited bool

func Init(conf *LoggerConf, isDebug bool) {
	if inited {
		return
	}
	logger, err := NewDefaultLogger(
		conf.Path,
		conf,
		isDebug, // 是否开启前台打印
	)
	if err != nil {
		panic(err)
	}

	SysLogger = logger
	inited = true

	SysLogger.Info("-------->system log init ok<---------")
}

func Close() {
	if !inited {
		return
	}
	SysLogger.Info("-------->system log release<---------")
	Release(SysLogger)
	SysLogger = NewDiscard()
	inited = false
}
