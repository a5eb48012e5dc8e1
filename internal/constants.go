package internal

const (
	// 应用名称，用于 XDG 目录
	AppName = "vibecleaner"

	// 历史数据库文件名
	HistoryFileName = "history.db"

	// 配置文件名（不含扩展名）
	ConfigName = "config"

	// 归档目录名，位于目标目录下
	ArchiveDirName = "Archive"

	// 哈希读取缓冲区大小
	HashBufferSize = 64 * 1024

	// 头部预筛选读取的字节数
	HeadDigestSize = 64 * 1024

	// 文件名冲突时允许的最大数字后缀
	MaxCollisionSuffix = 1_000_000

	// 默认归档天数
	DefaultArchiveDays = 30

	// 监控模式下等待下载完成的默认时间（毫秒）
	DefaultSettleDelayMillis = 1000

	// 字节到 MiB
	BytesPerMB = 1024 * 1024
)
