package lead

import "github.com/jals-dev/JALS-LeadService/pkg/txmanager"

// DBExecutor интерфейс для выполнения запросов (*sql.DB или транзакция)
type DBExecutor = txmanager.Executor
