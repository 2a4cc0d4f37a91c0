package internal

import (
	"fmt"
	"log"
	"time"

	"wayforpay/entity"
	"wayforpay/services"
)

// Logger prints messages of one category and copies them to the database
// when one is attached.
type Logger struct {
	category string
	debug    bool
	database services.Database
}

func NewLogger(category string, debug bool, database services.Database) *Logger {
	return &Logger{
		category: category,
		debug:    debug,
		database: database,
	}
}

func (l *Logger) Debug(text string) {
	if !l.debug {
		return
	}
	l.write("debug", text)
}

func (l *Logger) Info(text string) {
	l.write("info", text)
}

func (l *Logger) Warn(text string) {
	l.write("warning", text)
}

func (l *Logger) Error(text string, err error) {
	if err != nil {
		text = fmt.Sprintf("%s: %v", text, err)
	}
	l.write("error", text)
}

func (l *Logger) write(level, text string) {
	log.Printf("%s: [%s] %s", level, l.category, text)
	if l.database == nil || level == "debug" {
		return
	}
	message := &entity.LogMessage{
		Time:     time.Now(),
		Level:    level,
		Category: l.category,
		Text:     text,
	}
	if err := l.database.WriteLogMessage(message); err != nil {
		log.Println("write log message:", err)
	}
}
