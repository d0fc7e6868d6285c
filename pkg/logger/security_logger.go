package logger

import (
	"fmt"
	"net/url"
	"regexp"

	"seo-content-go/pkg/utils"
)

var urlInMessage = regexp.MustCompile(`https?://[^\s]+`)

// SecurityLogger logs scraped and searched URLs as domain plus short hash so that
// customer category paths and query strings stay out of shared logs.
type SecurityLogger struct {
	*Logger
}

// NewSecurityLogger wraps the given logger, or the global one when nil.
func NewSecurityLogger(base *Logger) *SecurityLogger {
	if base == nil {
		base = GetLogger()
	}
	return &SecurityLogger{Logger: base}
}

// MaskURL keeps the host and replaces path and query with a short hash.
func (sl *SecurityLogger) MaskURL(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return "url#" + utils.ShortHash(rawURL)
	}
	return fmt.Sprintf("%s#%s", parsed.Host, utils.ShortHash(rawURL))
}

// MaskLogMessage masks every URL embedded in free text.
func (sl *SecurityLogger) MaskLogMessage(message string) string {
	return urlInMessage.ReplaceAllStringFunc(message, sl.MaskURL)
}

func (sl *SecurityLogger) fields(rawURL string, extra map[string]interface{}) map[string]interface{} {
	fields := map[string]interface{}{"url": sl.MaskURL(rawURL)}
	for k, v := range extra {
		if s, ok := v.(string); ok {
			v = sl.MaskLogMessage(s)
		}
		fields[k] = v
	}
	return fields
}

func (sl *SecurityLogger) InfoWithURL(msg, rawURL string, extra map[string]interface{}) {
	sl.Logger.WithFields(sl.fields(rawURL, extra)).Info(msg)
}

func (sl *SecurityLogger) DebugWithURL(msg, rawURL string, extra map[string]interface{}) {
	sl.Logger.WithFields(sl.fields(rawURL, extra)).Debug(msg)
}

func (sl *SecurityLogger) WarnWithURL(msg, rawURL string, extra map[string]interface{}) {
	sl.Logger.WithFields(sl.fields(rawURL, extra)).Warn(msg)
}

func (sl *SecurityLogger) ErrorWithURL(msg, rawURL string, err error, extra map[string]interface{}) {
	fields := sl.fields(rawURL, extra)
	if err != nil {
		fields["error"] = sl.MaskLogMessage(err.Error())
	}
	sl.Logger.WithFields(fields).Error(msg)
}
