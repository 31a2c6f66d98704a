package utils

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/promotora-credito/app-cadastro/internal/logging"
	"github.com/promotora-credito/app-cadastro/internal/observability"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// AuditLog represents an audit log entry
type AuditLog struct {
	ID        primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	SessionID string                 `bson:"session_id" json:"session_id"`
	Action    string                 `bson:"action" json:"action"`
	Resource  string                 `bson:"resource" json:"resource"`
	ClientID  string                 `bson:"client_id,omitempty" json:"client_id,omitempty"`
	Status    string                 `bson:"status" json:"status"`
	Payload   map[string]interface{} `bson:"payload,omitempty" json:"payload,omitempty"`
	UserID    string                 `bson:"user_id,omitempty" json:"user_id,omitempty"`
	IPAddress string                 `bson:"ip_address,omitempty" json:"ip_address,omitempty"`
	UserAgent string                 `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	RequestID string                 `bson:"request_id,omitempty" json:"request_id,omitempty"`
	Timestamp time.Time              `bson:"timestamp" json:"timestamp"`
	Error     string                 `bson:"error,omitempty" json:"error,omitempty"`
}

// Audit constants
const (
	AuditActionCreate = "CREATE"
	AuditActionUpdate = "UPDATE"
	AuditActionDelete = "DELETE"

	AuditResourceClient      = "client"
	AuditResourceFormSection = "form_section"
	AuditResourceProposal    = "proposal"

	AuditStatusSuccess = "success"
	AuditStatusFailure = "failure"
)

// AuditContext contains context information for audit logging
type AuditContext struct {
	UserID    string
	IPAddress string
	UserAgent string
	RequestID string
}

// AuditSink persists batches of audit logs
type AuditSink interface {
	WriteBatch(ctx context.Context, batch []AuditLog) error
}

// MongoAuditSink writes audit logs to a MongoDB collection
type MongoAuditSink struct {
	collection *mongo.Collection
}

// NewMongoAuditSink creates a sink backed by the given collection
func NewMongoAuditSink(collection *mongo.Collection) *MongoAuditSink {
	return &MongoAuditSink{collection: collection}
}

// WriteBatch inserts the batch with an unordered bulk write
func (s *MongoAuditSink) WriteBatch(ctx context.Context, batch []AuditLog) error {
	operations := make([]mongo.WriteModel, 0, len(batch))
	for _, log := range batch {
		operations = append(operations, mongo.NewInsertOneModel().SetDocument(log))
	}

	_, err := s.collection.BulkWrite(ctx, operations, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return fmt.Errorf("failed to insert audit log batch: %w", err)
	}
	return nil
}

// AuditWorker manages asynchronous audit logging
type AuditWorker struct {
	sink          AuditSink
	auditChan     chan AuditLog
	workers       int
	batchSize     int
	flushInterval time.Duration
	wg            sync.WaitGroup
	stopOnce      sync.Once
}

var (
	auditWorker *AuditWorker
	auditMu     sync.RWMutex
)

// NewAuditWorker creates a worker pool that drains audit logs into sink
func NewAuditWorker(sink AuditSink, workers, bufferSize int) *AuditWorker {
	if workers <= 0 {
		workers = 1
	}
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &AuditWorker{
		sink:          sink,
		auditChan:     make(chan AuditLog, bufferSize),
		workers:       workers,
		batchSize:     100,
		flushInterval: 100 * time.Millisecond,
	}
}

// InitAuditWorker starts the global audit worker
func InitAuditWorker(sink AuditSink, workers, bufferSize int) *AuditWorker {
	auditMu.Lock()
	defer auditMu.Unlock()

	if auditWorker == nil {
		auditWorker = NewAuditWorker(sink, workers, bufferSize)
		auditWorker.Start()
	}
	return auditWorker
}

// GetAuditWorker returns the global audit worker instance
func GetAuditWorker() *AuditWorker {
	auditMu.RLock()
	defer auditMu.RUnlock()
	return auditWorker
}

// StopAuditWorker drains and stops the global audit worker
func StopAuditWorker() {
	auditMu.Lock()
	aw := auditWorker
	auditWorker = nil
	auditMu.Unlock()

	aw.Stop()
}

// Start starts the audit worker pool
func (aw *AuditWorker) Start() {
	aw.wg.Add(aw.workers)
	for i := 0; i < aw.workers; i++ {
		go func() {
			defer aw.wg.Done()
			aw.processAuditLogs()
		}()
	}

	logging.Logger.Info("audit worker started with batched processing",
		zap.Int("workers", aw.workers),
		zap.Int("buffer_size", cap(aw.auditChan)))
}

// processAuditLogs processes audit logs in batches
func (aw *AuditWorker) processAuditLogs() {
	batchTicker := time.NewTicker(aw.flushInterval)
	defer batchTicker.Stop()

	batch := make([]AuditLog, 0, aw.batchSize)

	for {
		select {
		case auditLog, ok := <-aw.auditChan:
			if !ok {
				if len(batch) > 0 {
					aw.flushBatch(batch)
				}
				return
			}
			batch = append(batch, auditLog)
			observability.AuditQueueDepth.Set(float64(len(aw.auditChan)))

			if len(batch) >= aw.batchSize {
				aw.flushBatch(batch)
				batch = batch[:0]
			}
		case <-batchTicker.C:
			if len(batch) > 0 {
				aw.flushBatch(batch)
				batch = batch[:0]
			}
		}
	}
}

// flushBatch hands a copy of the batch to the sink
func (aw *AuditWorker) flushBatch(batch []AuditLog) {
	logger := logging.Logger.With(
		zap.Int("batch_size", len(batch)),
		zap.String("operation", "audit_batch_insert"),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	out := make([]AuditLog, len(batch))
	copy(out, batch)

	if err := aw.sink.WriteBatch(ctx, out); err != nil {
		logger.Error("failed to insert audit log batch", zap.Error(err))
		return
	}

	logger.Debug("audit log batch inserted successfully")
}

// Stop closes the queue and waits for pending batches to be written.
// Safe to call on a nil worker and more than once.
func (aw *AuditWorker) Stop() {
	if aw == nil {
		return
	}
	aw.stopOnce.Do(func() {
		close(aw.auditChan)
		aw.wg.Wait()
	})
}

// Log enqueues an audit log without blocking. When the queue is full the
// entry is written synchronously.
func (aw *AuditWorker) Log(ctx context.Context, entry AuditLog) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if entry.Payload != nil {
		entry.Payload = observability.MaskSensitiveData(entry.Payload)
	}

	select {
	case aw.auditChan <- entry:
		return nil
	default:
		logging.Logger.Warn("audit channel full, falling back to synchronous logging",
			zap.String("session_id", entry.SessionID),
			zap.String("action", entry.Action))

		dbCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		return aw.sink.WriteBatch(dbCtx, []AuditLog{entry})
	}
}

// Stats returns current audit worker statistics
func (aw *AuditWorker) Stats() map[string]interface{} {
	if aw == nil {
		return map[string]interface{}{
			"status": "not_initialized",
		}
	}

	return map[string]interface{}{
		"status":           "running",
		"workers":          aw.workers,
		"buffer_capacity":  cap(aw.auditChan),
		"buffer_usage":     len(aw.auditChan),
		"buffer_available": cap(aw.auditChan) - len(aw.auditChan),
	}
}

// GetAuditContextFromGin extracts audit context from Gin context
func GetAuditContextFromGin(c *gin.Context) AuditContext {
	userID := ""
	if sub, exists := c.Get("user_id"); exists {
		userID = fmt.Sprintf("%v", sub)
	}

	return AuditContext{
		UserID:    userID,
		IPAddress: c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
		RequestID: c.GetString("request_id"),
	}
}

// Apply copies the request context onto an audit log
func (a AuditContext) Apply(entry AuditLog) AuditLog {
	entry.UserID = a.UserID
	entry.IPAddress = a.IPAddress
	entry.UserAgent = a.UserAgent
	entry.RequestID = a.RequestID
	return entry
}
