//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"memo-whisper/internal/api/server"
	"memo-whisper/internal/app/api"
	"memo-whisper/internal/app/api/openai"
	"memo-whisper/internal/app/api/openai/whisper"
	"memo-whisper/internal/app/api/whisper_cpp"
	"memo-whisper/internal/app/converter"
	"memo-whisper/internal/app/repository"
	"memo-whisper/internal/app/repository/pg"
	"memo-whisper/internal/app/repository/sqlite"
	"memo-whisper/internal/app/util/logging"
	"memo-whisper/internal/config"
)

func provideLogger(cfg config.Config) (*zap.Logger, func(), error) {
	logger, err := logging.NewLogger(cfg.Verbose)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}

// provideTranscriber selects the transcription engine. The whisper_cpp
// engine loads its model weights once here; every file in the run shares
// the loaded model. The openai engine needs OPENAI_API_KEY.
func provideTranscriber(cfg config.Config, logger *zap.Logger) (api.Transcriber, func(), error) {
	switch cfg.Engine {
	case config.EngineOpenAI:
		apiKey, err := config.GetOpenAIKey()
		if err != nil {
			return nil, nil, err
		}
		return whisper.NewRemoteTranscriber(openai.NewClient(apiKey)), func() {}, nil
	default:
		local, err := whisper_cpp.NewLocalTranscriber(cfg.Model, cfg.ModelDir, logger)
		if err != nil {
			return nil, nil, err
		}
		return local, func() {
			if err := local.Close(); err != nil {
				logger.Warn("closing whisper model", zap.Error(err))
			}
		}, nil
	}
}

func provideTranscriptionDAO(cfg config.Config, logger *zap.Logger) (repository.TranscriptionDAO, func(), error) {
	var (
		db  repository.TranscriptionDAO
		err error
	)
	switch cfg.DB.Driver {
	case "postgres":
		db, err = pg.NewPostgresDB(cfg.DB.DSN)
	default:
		db, err = sqlite.NewSQLiteDB(cfg.DB.DSN)
	}
	if err != nil {
		return nil, nil, err
	}
	return db, func() {
		if err := db.Close(); err != nil {
			logger.Warn("closing history store", zap.Error(err))
		}
	}, nil
}

func provideRunInfo(cfg config.Config) converter.RunInfo {
	return converter.RunInfo{Engine: cfg.Engine, Model: cfg.Model}
}

func InitializeConverter(cfg config.Config) (*converter.Converter, func(), error) {
	wire.Build(converter.NewConverter, provideTranscriber, provideTranscriptionDAO, provideRunInfo, provideLogger)
	return &converter.Converter{}, nil, nil
}

func InitializeDAO(cfg config.Config) (repository.TranscriptionDAO, func(), error) {
	wire.Build(provideTranscriptionDAO, provideLogger)
	return nil, nil, nil
}

func InitializeServer(cfg config.Config) (*server.Server, func(), error) {
	wire.Build(server.New, provideTranscriptionDAO, provideLogger)
	return &server.Server{}, nil, nil
}
