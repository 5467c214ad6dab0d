package slots

// Recorder метрики попаданий в кеш
type Recorder interface {
	RecordSlotCacheLookup(hit bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}
