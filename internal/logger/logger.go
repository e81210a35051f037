package logger

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LogLevel represents logging severity level
type LogLevel string

const (
	LogLevelDEBUG LogLevel = "DEBUG"
	LogLevelINFO  LogLevel = "INFO"
	LogLevelWARN  LogLevel = "WARN"
	LogLevelERROR LogLevel = "ERROR"
)

// EventCode represents structured event types
type EventCode string

const (
	EventAPIRequest  EventCode = "API_REQUEST"
	EventAPIResponse EventCode = "API_RESPONSE"
	EventLogin       EventCode = "USER_LOGIN"
	EventAuthError   EventCode = "AUTH_ERROR"
	EventKeyIssued   EventCode = "KEY_ISSUED"
	EventKeyRevoked  EventCode = "KEY_REVOKED"
	EventUserCreated EventCode = "USER_CREATED"
	EventUserDeleted EventCode = "USER_DELETED"
	EventSystemStart EventCode = "SYSTEM_START"
	EventSystemStop  EventCode = "SYSTEM_STOP"
	EventError       EventCode = "ERROR"
)

// StructuredLog is the persisted log record format
type StructuredLog struct {
	Timestamp      string                 `json:"timestamp"`
	Level          LogLevel               `json:"level"`
	InstanceID     string                 `json:"instance_id"`
	EventCode      EventCode              `json:"event_code"`
	Message        string                 `json:"message"`
	Details        map[string]interface{} `json:"details"`
	Hostname       string                 `json:"hostname"`
	SourceLocation string                 `json:"source_location"`
}

// Logger writes structured logs to stdout and database
type Logger struct {
	db         *sql.DB
	hostname   string
	instanceID string
}

var defaultLogger *Logger

// InitLogger initializes the default logger. db may be nil; logs then go to
// stdout only.
func InitLogger(db *sql.DB) error {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	defaultLogger = &Logger{
		db:         db,
		hostname:   hostname,
		instanceID: uuid.NewString(),
	}

	return nil
}

// GetLogger returns default logger
func GetLogger() *Logger {
	return defaultLogger
}

// LogAPIRequest records an API request event
func (l *Logger) LogAPIRequest(method, path, userAgent, remoteAddr string) {
	l.log(LogLevelINFO, EventAPIRequest, fmt.Sprintf("API request: %s %s", method, path), map[string]interface{}{
		"method":      method,
		"path":        path,
		"user_agent":  userAgent,
		"remote_addr": remoteAddr,
	})
}

// LogAPIResponse records an API response event
func (l *Logger) LogAPIResponse(method, path string, statusCode int, responseTime time.Duration) {
	details := map[string]interface{}{
		"method":        method,
		"path":          path,
		"status_code":   statusCode,
		"response_time": responseTime.Milliseconds(),
	}

	level := LogLevelINFO
	if statusCode >= 400 {
		level = LogLevelWARN
	}
	if statusCode >= 500 {
		level = LogLevelERROR
	}

	l.log(level, EventAPIResponse, fmt.Sprintf("API response: %s %s [%d] (%dms)", method, path, statusCode, responseTime.Milliseconds()), details)
}

// LogUserLogin records a username/password authentication attempt
func (l *Logger) LogUserLogin(username, remoteAddr string, success bool) {
	details := map[string]interface{}{
		"username":    username,
		"remote_addr": remoteAddr,
		"success":     success,
	}
	level := LogLevelINFO
	message := fmt.Sprintf("User login success: %s", username)
	if !success {
		level = LogLevelWARN
		message = fmt.Sprintf("User login failed: %s", username)
	}
	l.log(level, EventLogin, message, details)
}

// LogAuthRejected records a rejected API key presentation. The response to
// the client stays generic; the reason is only recorded here.
func (l *Logger) LogAuthRejected(reason, remoteAddr string) {
	l.log(LogLevelWARN, EventAuthError, "API key rejected: "+reason, map[string]interface{}{
		"reason":      reason,
		"remote_addr": remoteAddr,
	})
}

// LogKeyIssued records issuance of an API key. maskedKey must already be
// masked; raw keys never reach the logger.
func (l *Logger) LogKeyIssued(maskedKey, role string, bootstrap bool) {
	l.log(LogLevelINFO, EventKeyIssued, fmt.Sprintf("API key issued: %s (%s)", maskedKey, role), map[string]interface{}{
		"key":       maskedKey,
		"role":      role,
		"bootstrap": bootstrap,
	})
}

// LogKeyRevoked records revocation of an API key.
func (l *Logger) LogKeyRevoked(maskedKey string, existed bool) {
	l.log(LogLevelINFO, EventKeyRevoked, "API key revoked: "+maskedKey, map[string]interface{}{
		"key":     maskedKey,
		"existed": existed,
	})
}

// LogUserCreated records creation of a user account
func (l *Logger) LogUserCreated(username, role string, initial bool) {
	l.log(LogLevelINFO, EventUserCreated, fmt.Sprintf("User created: %s (%s)", username, role), map[string]interface{}{
		"username": username,
		"role":     role,
		"initial":  initial,
	})
}

// LogUserDeleted records deletion of a user account
func (l *Logger) LogUserDeleted(username string) {
	l.log(LogLevelINFO, EventUserDeleted, "User deleted: "+username, map[string]interface{}{
		"username": username,
	})
}

// LogError records an error event with optional error payload
func (l *Logger) LogError(message string, err error, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	if err != nil {
		details["error"] = err.Error()
	}
	l.log(LogLevelERROR, EventError, message, details)
}

// LogSystem records a lifecycle event
func (l *Logger) LogSystem(code EventCode, message string) {
	l.log(LogLevelINFO, code, message, nil)
}

// log writes structured log to stdout and persists to DB
func (l *Logger) log(level LogLevel, eventCode EventCode, message string, details map[string]interface{}) {
	if l == nil {
		return
	}

	// Capture caller location
	_, file, line, ok := runtime.Caller(2)
	sourceLocation := "unknown"
	if ok {
		parts := strings.Split(file, "/")
		filename := parts[len(parts)-1]
		sourceLocation = fmt.Sprintf("%s:%d", filename, line)
	}

	structuredLog := StructuredLog{
		Timestamp:      time.Now().UTC().Format(time.RFC3339Nano),
		Level:          level,
		InstanceID:     l.instanceID,
		EventCode:      eventCode,
		Message:        message,
		Details:        details,
		Hostname:       l.hostname,
		SourceLocation: sourceLocation,
	}

	// Console
	logJSON, _ := json.Marshal(structuredLog)
	log.Printf("%s", string(logJSON))

	// Persist
	l.saveToDatabase(structuredLog)
}

// saveToDatabase persists a structured log into access_logs
func (l *Logger) saveToDatabase(logEntry StructuredLog) {
	if l.db == nil {
		return
	}

	detailsJSON, _ := json.Marshal(logEntry.Details)

	insertSQL := `
	INSERT INTO access_logs (
		timestamp, level, event_code, message, details, hostname, source_location
	) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := l.db.Exec(insertSQL,
		logEntry.Timestamp,
		logEntry.Level,
		logEntry.EventCode,
		logEntry.Message,
		string(detailsJSON),
		logEntry.Hostname,
		logEntry.SourceLocation,
	)
	if err != nil {
		log.Printf("Failed to save log to database: %v", err)
	}
}

// GetAccessLogs loads recent logs with pagination
func (l *Logger) GetAccessLogs(limit int, offset int) ([]StructuredLog, error) {
	if l.db == nil {
		return nil, nil
	}

	querySQL := `
	SELECT timestamp, level, event_code, message, details, hostname, source_location
	FROM access_logs
	ORDER BY timestamp DESC
	LIMIT ? OFFSET ?
	`

	rows, err := l.db.Query(querySQL, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []StructuredLog
	for rows.Next() {
		var logRec StructuredLog
		var detailsJSON string

		err := rows.Scan(
			&logRec.Timestamp,
			&logRec.Level,
			&logRec.EventCode,
			&logRec.Message,
			&detailsJSON,
			&logRec.Hostname,
			&logRec.SourceLocation,
		)
		if err != nil {
			continue
		}

		if detailsJSON != "" {
			_ = json.Unmarshal([]byte(detailsJSON), &logRec.Details)
		}
		logs = append(logs, logRec)
	}
	return logs, nil
}
