package log

// Global vars related to the logger package
var (
	subLoggers = map[string]*SubLogger{}

	Global       *SubLogger
	ConfigMgr    *SubLogger
	DataGen      *SubLogger
	Engine       *SubLogger
	ExchangeSim  *SubLogger
	PortfolioMgr *SubLogger
	Statistics   *SubLogger
	StrategyMgr  *SubLogger
)
