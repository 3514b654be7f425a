// cmd/container.go
//
// Composition root. Owns infrastructure (storage, LLM, Redis, DB, email)
// and wires the resume module on top of it.
package main

import (
	"context"
	"path"
	"time"

	"github.com/Abraxas-365/resumeforge/pkg/ai/llm"
	"github.com/Abraxas-365/resumeforge/pkg/ai/ocr"
	"github.com/Abraxas-365/resumeforge/pkg/ai/providers/aianthropic"
	"github.com/Abraxas-365/resumeforge/pkg/ai/providers/aibedrock"
	"github.com/Abraxas-365/resumeforge/pkg/ai/providers/aigemini"
	"github.com/Abraxas-365/resumeforge/pkg/ai/providers/aiopenai"
	"github.com/Abraxas-365/resumeforge/pkg/ai/providers/aitesseract"
	"github.com/Abraxas-365/resumeforge/pkg/config"
	"github.com/Abraxas-365/resumeforge/pkg/fsx"
	"github.com/Abraxas-365/resumeforge/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/resumeforge/pkg/fsx/fsxs3"
	"github.com/Abraxas-365/resumeforge/pkg/jobx"
	"github.com/Abraxas-365/resumeforge/pkg/jobx/jobxredis"
	"github.com/Abraxas-365/resumeforge/pkg/logx"
	"github.com/Abraxas-365/resumeforge/pkg/notifx"
	"github.com/Abraxas-365/resumeforge/pkg/notifx/notifxconsole"
	"github.com/Abraxas-365/resumeforge/pkg/notifx/notifxses"
	"github.com/Abraxas-365/resumeforge/pkg/ratelimit"
	"github.com/Abraxas-365/resumeforge/pkg/ratelimit/ratelimitmemory"
	"github.com/Abraxas-365/resumeforge/pkg/ratelimit/ratelimitredis"
	"github.com/Abraxas-365/resumeforge/pkg/resume"
	"github.com/Abraxas-365/resumeforge/pkg/resume/extract"
	"github.com/Abraxas-365/resumeforge/pkg/resume/render"
	"github.com/Abraxas-365/resumeforge/pkg/resume/resumeapi"
	"github.com/Abraxas-365/resumeforge/pkg/resume/resumeinfra"
	"github.com/Abraxas-365/resumeforge/pkg/resume/resumejobs"
	"github.com/Abraxas-365/resumeforge/pkg/resume/resumesrv"
	"github.com/Abraxas-365/resumeforge/pkg/resume/rewrite"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

// probe is one dependency checked by /health.
type probe struct {
	name  string
	check func(ctx context.Context) error
}

// Container holds shared infrastructure and the resume module.
type Container struct {
	Config *config.Config

	// Infrastructure
	DB       *sqlx.DB
	Redis    *redis.Client
	Uploads  fsx.FileSystem
	Enhanced fsx.FileSystem
	LLM      llm.LLM
	OCR      *ocr.Client
	Mailer   *notifx.Client

	// Resume module
	Repository    resume.Repository
	Limiter       ratelimit.Limiter
	ResumeService *resumesrv.Service
	Jobs          *jobx.Client
	JobRunner     *resumejobs.Runner
	Handlers      *resumeapi.Handlers

	memLimiter *ratelimitmemory.Limiter
	sweepers   []*resumesrv.Sweeper
	probes     []probe
}

func NewContainer(cfg *config.Config) *Container {
	logx.Info("🔧 Initializing application container...")

	c := &Container{Config: cfg}

	c.initInfrastructure()
	c.initModules()

	logx.Info("✅ Application container initialized")
	return c
}

// ---------------------------------------------------------------------------
// Infrastructure
// ---------------------------------------------------------------------------

func (c *Container) initInfrastructure() {
	logx.Info("🏗️ Initializing infrastructure...")

	c.initFileStorage()
	c.initLLM()
	c.initOCR()
	c.initRedis()
	c.initDatabase()
	c.initMailer()

	logx.Info("✅ Infrastructure initialized")
}

func loadAWSConfig(region string) aws.Config {
	cfg, err := awsConfig.LoadDefaultConfig(context.Background(), awsConfig.WithRegion(region))
	if err != nil {
		logx.Fatalf("Unable to load AWS SDK config: %v", err)
	}
	return cfg
}

func (c *Container) initFileStorage() {
	st := c.Config.Storage

	switch st.Mode {
	case "s3":
		client := s3.NewFromConfig(loadAWSConfig(st.AWSRegion))
		c.Uploads = fsxs3.NewS3FileSystem(client, st.AWSBucket, path.Clean(st.UploadFolder))
		c.Enhanced = fsxs3.NewS3FileSystem(client, st.AWSBucket, path.Clean(st.EnhancedFolder))
		logx.Infof("  ✅ S3 file system configured (bucket: %s, region: %s)", st.AWSBucket, st.AWSRegion)

	default:
		uploads, err := fsxlocal.NewLocalFileSystem(st.UploadFolder)
		if err != nil {
			logx.Fatalf("Failed to initialize upload folder: %v", err)
		}
		enhanced, err := fsxlocal.NewLocalFileSystem(st.EnhancedFolder)
		if err != nil {
			logx.Fatalf("Failed to initialize enhanced folder: %v", err)
		}
		c.Uploads, c.Enhanced = uploads, enhanced
		logx.Infof("  ✅ Local file system configured (uploads: %s, enhanced: %s)", uploads.GetBasePath(), enhanced.GetBasePath())
	}
}

func (c *Container) initLLM() {
	ai := c.Config.AI
	var (
		provider llm.LLM
		err      error
	)

	switch ai.Provider {
	case config.ProviderGemini:
		provider, err = aigemini.NewGeminiProvider(context.Background(), ai.GeminiAPIKey, aigemini.WithDefaultModel(ai.Models[0]))
	case config.ProviderOpenAI:
		provider, err = aiopenai.NewOpenAIProvider(ai.OpenAIAPIKey)
	case config.ProviderAzure:
		provider, err = aiopenai.NewAzureProvider(aiopenai.AzureConfig{
			Endpoint:   ai.AzureEndpoint,
			APIVersion: ai.AzureAPIVersion,
			APIKey:     ai.AzureAPIKey,
			ADToken:    ai.AzureADToken,
			Deployment: ai.Models[0],
		})
	case config.ProviderAnthropic:
		provider, err = aianthropic.NewAnthropicProvider(ai.AnthropicAPIKey)
	case config.ProviderBedrock:
		provider = aibedrock.NewBedrockProvider(loadAWSConfig(ai.BedrockRegion), aibedrock.WithDefaultModel(ai.Models[0]))
	}
	if err != nil {
		logx.Fatalf("Failed to initialize LLM provider %s: %v", ai.Provider, err)
	}

	c.LLM = provider
	logx.Infof("  ✅ LLM provider configured (%s, models: %v)", ai.Provider, ai.Models)
}

func (c *Container) initOCR() {
	ai := c.Config.AI

	switch ai.OCRProvider {
	case config.OCRGemini:
		// The Gemini provider doubles as a recognizer.
		gemini, ok := c.LLM.(*aigemini.GeminiProvider)
		if !ok {
			var err error
			if gemini, err = aigemini.NewGeminiProvider(context.Background(), ai.GeminiAPIKey); err != nil {
				logx.Fatalf("Failed to initialize Gemini OCR: %v", err)
			}
		}
		c.OCR = ocr.NewClient(gemini, ocr.WithModel(ai.OCRModel))
		logx.Infof("  ✅ OCR configured (gemini, model: %s)", ai.OCRModel)

	default:
		tess := aitesseract.New(aitesseract.WithLanguage(ai.TesseractLang))
		if !tess.Available() {
			logx.Warn("  ⚠️ tesseract binary not found, image uploads will be rejected")
			return
		}
		c.OCR = ocr.NewClient(tess)
		logx.Infof("  ✅ OCR configured (tesseract, lang: %s)", ai.TesseractLang)
	}
}

func (c *Container) initRedis() {
	rc := c.Config.Redis
	if !rc.Enabled() {
		logx.Info("  ℹ️ Redis not configured: in-memory rate limiting, async jobs disabled")
		return
	}

	c.Redis = redis.NewClient(&redis.Options{
		Addr:     rc.Addr,
		Password: rc.Password,
		DB:       rc.DB,
	})
	if err := c.Redis.Ping(context.Background()).Err(); err != nil {
		logx.Fatalf("Failed to connect to Redis: %v", err)
	}
	c.probes = append(c.probes, probe{name: "redis", check: func(ctx context.Context) error {
		return c.Redis.Ping(ctx).Err()
	}})
	logx.Info("  ✅ Redis connected")
}

func (c *Container) initDatabase() {
	dbc := c.Config.Database
	if !dbc.Enabled() {
		c.Repository = resumeinfra.NewMemoryRepository()
		logx.Info("  ℹ️ DATABASE_URL not set: enhancement history kept in memory")
		return
	}

	db, err := sqlx.Connect("postgres", dbc.URL)
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(dbc.MaxOpenConns)
	db.SetMaxIdleConns(dbc.MaxIdleConns)
	db.SetConnMaxLifetime(dbc.ConnMaxLifetime)
	c.DB = db

	repo := resumeinfra.NewPostgresRepository(db)
	if err := repo.EnsureSchema(context.Background()); err != nil {
		logx.Fatalf("Failed to prepare database schema: %v", err)
	}
	c.Repository = repo
	c.probes = append(c.probes, probe{name: "database", check: repo.Ping})
	logx.Info("  ✅ Database connected")
}

func (c *Container) initMailer() {
	nc := c.Config.Notifx

	var provider notifx.EmailSender
	switch nc.Provider {
	case "ses":
		provider = notifxses.NewSESProvider(ses.NewFromConfig(loadAWSConfig(nc.AWSRegion)), nc.FromAddress)
	default:
		provider = notifxconsole.NewConsoleProvider()
	}

	c.Mailer = notifx.NewClient(provider, notifx.WithFrom(nc.FromAddress, nc.FromName))
	logx.Infof("  ✅ Email provider configured (%s)", nc.Provider)
}

// ---------------------------------------------------------------------------
// Resume module
// ---------------------------------------------------------------------------

func (c *Container) initModules() {
	logx.Info("📦 Initializing modules...")
	cfg := c.Config

	if c.Redis != nil {
		c.Limiter = ratelimitredis.New(c.Redis, cfg.RateLimit.Requests, cfg.RateLimit.Window)
	} else {
		c.memLimiter = ratelimitmemory.New(cfg.RateLimit.Requests, cfg.RateLimit.Window)
		c.Limiter = c.memLimiter
	}

	enhancer := rewrite.NewAIEnhancer(c.LLM, cfg.AI.Models,
		rewrite.WithTimeout(cfg.AI.Timeout),
		rewrite.WithTemperature(float32(cfg.AI.Temperature)),
		rewrite.WithMaxTokens(cfg.AI.MaxTokens),
	)

	c.ResumeService = resumesrv.NewService(
		c.Uploads,
		c.Enhanced,
		extract.New(c.OCR),
		enhancer,
		render.New(),
		c.Repository,
	)

	c.sweepers = []*resumesrv.Sweeper{
		resumesrv.NewSweeper("enhanced", c.Enhanced, cfg.Storage.EnhancedTTL, cfg.Storage.CleanupInterval,
			resumesrv.WithMatch(resume.IsEnhancedFilename)),
		resumesrv.NewSweeper("uploads", c.Uploads, cfg.Storage.EnhancedTTL, cfg.Storage.CleanupInterval),
	}

	apiCfg := resumeapi.Config{
		AppName: cfg.Server.AppName,
		Limiter: c.Limiter,
		Window:  cfg.RateLimit.Window,
	}

	if c.Redis != nil {
		c.initJobs()
		apiCfg.Jobs = c.JobRunner
	}

	c.Handlers = resumeapi.NewHandlers(c.ResumeService, apiCfg)
	logx.Info("  ✅ Resume module initialized")
}

func (c *Container) initJobs() {
	jc := c.Config.Jobx

	queue := jobxredis.NewRedisQueue(c.Redis, jobxredis.WithResultTTL(jc.ResultTTL))
	c.Jobs = jobx.NewClient(queue,
		jobx.WithQueues(jc.Queues...),
		jobx.WithConcurrency(jc.Concurrency),
		jobx.WithPollInterval(jc.PollInterval),
		jobx.WithShutdownTimeout(jc.ShutdownTimeout),
		jobx.WithDequeueTimeout(jc.DequeueTimeout),
		jobx.WithDefaultRetryDelay(jc.DefaultRetryDelay),
		jobx.WithJobTimeout(c.Config.AI.Timeout*time.Duration(max(len(c.Config.AI.Models), 1))+time.Minute),
	)

	runner, err := resumejobs.New(c.ResumeService, c.Jobs,
		resumejobs.WithQueue(jc.Queues[0]),
		resumejobs.WithMaxRetries(jc.MaxRetries),
		resumejobs.WithMailer(c.Mailer, c.Config.Server.BaseURL),
	)
	if err != nil {
		logx.Fatalf("Failed to initialize resume jobs: %v", err)
	}
	runner.Register(c.Jobs)
	c.JobRunner = runner
	logx.Infof("  ✅ Async jobs enabled (queues: %v, workers: %d)", jc.Queues, jc.Concurrency)
}

// ---------------------------------------------------------------------------
// Lifecycle
// ---------------------------------------------------------------------------

// StartBackgroundServices runs the sweepers, the limiter pruner and the job
// workers until ctx is cancelled. The returned channel closes once they stop.
func (c *Container) StartBackgroundServices(ctx context.Context) <-chan struct{} {
	logx.Info("🔄 Starting background services...")
	done := make(chan struct{})

	go func() {
		defer close(done)

		for _, s := range c.sweepers {
			go s.Run(ctx)
		}
		if c.memLimiter != nil {
			go c.pruneLimiter(ctx)
		}
		if c.Jobs != nil {
			if err := c.Jobs.Start(ctx); err != nil {
				logx.WithError(err).Warn("Job workers stopped with error")
			}
			return
		}
		<-ctx.Done()
	}()
	return done
}

func (c *Container) pruneLimiter(ctx context.Context) {
	ticker := time.NewTicker(c.Config.Storage.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := c.memLimiter.Prune(); n > 0 {
				logx.Debugf("ratelimit: pruned %d idle clients", n)
			}
		}
	}
}

func (c *Container) Cleanup() {
	logx.Info("🧹 Cleaning up resources...")

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logx.Errorf("Error closing database: %v", err)
		} else {
			logx.Info("  ✅ Database connection closed")
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logx.Errorf("Error closing Redis: %v", err)
		} else {
			logx.Info("  ✅ Redis connection closed")
		}
	}

	logx.Info("✅ Cleanup complete")
}
