package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	mongostore "github.com/sngm3741/jobboard/api/internal/infrastructure/mongo"
	"github.com/sngm3741/jobboard/api/internal/jobs/domain"
)

type seedOptions struct {
	envName          string
	jobCount         int
	companyCount     int
	applicationCount int
	dropCollections  bool
	randomSeed       int64
}

type collections struct {
	jobs         string
	applications string
}

type companyMeta struct {
	ID   string
	Name string
	Logo string
}

var (
	companyNames = []string{"Acme Labs", "Northwind", "Globex", "Initech", "Umbrella Health", "Stark Finance", "Wayne Media", "Hooli"}
	titles       = []string{"Backend Engineer", "Frontend Engineer", "Data Scientist", "Product Manager", "DevOps Engineer", "QA Analyst", "Mobile Developer", "Security Engineer"}
	skillPool    = []string{"Go", "React", "TypeScript", "Python", "Kubernetes", "MongoDB", "AWS", "GraphQL", "SQL", "Terraform"}
	firstNames   = []string{"Alex", "Sam", "Jordan", "Taylor", "Morgan", "Riley"}
	lastNames    = []string{"Kim", "Garcia", "Okafor", "Sato", "Novak", "Silva"}
)

func main() {
	opts := parseFlags()

	if err := loadEnvFiles(opts.envName); err != nil {
		log.Printf("WARN: 環境変数ファイルを読み込めませんでした: %v", err)
	}

	cfg := collections{
		jobs:         envOrDefault("JOB_COLLECTION", "jobs"),
		applications: envOrDefault("APPLICATION_COLLECTION", "applications"),
	}

	mongoURI := envOrDefault("MONGO_URI", "mongodb://localhost:27017")
	dbName := envOrDefault("MONGO_DB", "jobboard")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("MongoDB 接続に失敗しました: %v", err)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	db := client.Database(dbName)

	if opts.dropCollections {
		dropCollections(ctx, db, cfg)
		log.Printf("既存コレクションを削除しました")
	}

	if err := mongostore.EnsureIndexes(ctx, db, cfg.jobs, cfg.applications); err != nil {
		log.Fatalf("インデックス作成に失敗しました: %v", err)
	}

	rng := rand.New(rand.NewSource(opts.randomSeed))
	listings := mongostore.NewListingRepository(db, cfg.jobs)
	applications := mongostore.NewApplicationRepository(db, cfg.applications)

	companies := generateCompanies(rng, opts.companyCount)
	jobIDs := make([]string, 0, opts.jobCount)
	for _, listing := range generateListings(rng, companies, opts.jobCount) {
		listing := listing
		id, err := listings.Insert(ctx, &listing)
		if err != nil {
			log.Fatalf("求人データの挿入に失敗しました: %v", err)
		}
		jobIDs = append(jobIDs, id)
	}

	inserted := 0
	for i := 0; i < opts.applicationCount && len(jobIDs) > 0; i++ {
		jobID := jobIDs[rng.Intn(len(jobIDs))]
		app := generateApplication(rng, jobID, i)
		if _, err := applications.Insert(ctx, &app); err != nil {
			log.Fatalf("応募データの挿入に失敗しました: %v", err)
		}
		if err := listings.IncrementApplications(ctx, jobID, 1); err != nil {
			log.Fatalf("応募数の更新に失敗しました: %v", err)
		}
		inserted++
	}

	log.Printf("Seed 完了: companies=%d jobs=%d applications=%d", len(companies), len(jobIDs), inserted)
	log.Printf("Mongo: %s / %s (env=%s)", mongoURI, dbName, opts.envName)
}

func parseFlags() seedOptions {
	var opts seedOptions
	flag.StringVar(&opts.envName, "env", "local", "env ディレクトリ内の env ファイル名 (例: local, staging)")
	flag.IntVar(&opts.jobCount, "jobs", 35, "生成する求人数")
	flag.IntVar(&opts.companyCount, "companies", 5, "生成する企業数")
	flag.IntVar(&opts.applicationCount, "applications", 40, "生成する応募数")
	flag.BoolVar(&opts.dropCollections, "drop", true, "既存コレクションを削除してから投入する")
	defaultSeed := time.Now().UnixNano()
	flag.Int64Var(&opts.randomSeed, "seed", defaultSeed, "乱数シード（再現用）")
	flag.Parse()

	if opts.jobCount <= 0 {
		log.Fatal("jobs は 1 以上を指定してください")
	}
	if opts.companyCount <= 0 {
		opts.companyCount = 1
	}
	if opts.applicationCount < 0 {
		opts.applicationCount = 0
	}
	return opts
}

// loadEnvFiles は shared.env と <env>.env を存在するものだけ読み込む。
func loadEnvFiles(envName string) error {
	base := filepath.Clean(filepath.Join("..", "env"))
	files := make([]string, 0, 2)
	for _, file := range []string{
		filepath.Join(base, "shared.env"),
		filepath.Join(base, fmt.Sprintf("%s.env", envName)),
	} {
		if _, err := os.Stat(file); err == nil {
			files = append(files, file)
		}
	}
	if len(files) == 0 {
		return nil
	}
	return godotenv.Load(files...)
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func dropCollections(ctx context.Context, db *mongo.Database, cfg collections) {
	for _, name := range []string{cfg.jobs, cfg.applications} {
		if err := db.Collection(name).Drop(ctx); err != nil {
			log.Printf("WARN: コレクション %s の削除に失敗: %v", name, err)
		}
	}
}

func generateCompanies(rng *rand.Rand, count int) []companyMeta {
	companies := make([]companyMeta, 0, count)
	for i := 0; i < count; i++ {
		name := companyNames[i%len(companyNames)]
		if i >= len(companyNames) {
			name = fmt.Sprintf("%s %d", name, i/len(companyNames)+1)
		}
		companies = append(companies, companyMeta{
			ID:   fmt.Sprintf("company-%03d", i+1),
			Name: name,
			Logo: fmt.Sprintf("https://picsum.photos/seed/%d/96/96", rng.Intn(10000)),
		})
	}
	return companies
}

// generateListings は postedAt が過去へ向かって並ぶ求人を生成する。一部は同時刻、一部は非公開にする。
func generateListings(rng *rand.Rand, companies []companyMeta, count int) []domain.Listing {
	now := time.Now().UTC().Truncate(time.Second)
	listings := make([]domain.Listing, 0, count)
	postedAt := now
	for i := 0; i < count; i++ {
		if rng.Intn(4) != 0 {
			postedAt = postedAt.Add(-time.Duration(rng.Intn(180)+1) * time.Minute)
		}
		company := companies[rng.Intn(len(companies))]
		title := titles[rng.Intn(len(titles))]
		listings = append(listings, domain.Listing{
			Title:           title,
			CompanyID:       company.ID,
			CompanyName:     company.Name,
			CompanyLogo:     company.Logo,
			Location:        pick(rng, domain.Locations),
			JobType:         pick(rng, domain.JobTypes),
			ExperienceLevel: pick(rng, domain.ExperienceLevels),
			Industry:        pick(rng, domain.Industries),
			SalaryRange:     pick(rng, domain.SalaryRanges),
			Skills:          pickUnique(rng, skillPool, rng.Intn(4)+1),
			Description:     fmt.Sprintf("%s では %s を募集しています。", company.Name, title),
			PostedAt:        postedAt,
			UpdatedAt:       postedAt,
			IsActive:        rng.Intn(10) != 0,
		})
	}
	return listings
}

func generateApplication(rng *rand.Rand, jobID string, n int) domain.Application {
	first := pick(rng, firstNames)
	last := pick(rng, lastNames)
	return domain.Application{
		JobID:          jobID,
		ApplicantID:    fmt.Sprintf("seeker-%03d", rng.Intn(20)+1),
		ApplicantName:  first + " " + last,
		ApplicantEmail: strings.ToLower(fmt.Sprintf("%s.%s%d@example.com", first, last, n)),
		AppliedAt:      time.Now().UTC().Add(-time.Duration(rng.Intn(72*60)) * time.Minute),
		Status:         domain.ApplicationStatusPending,
		ApplicationData: domain.ApplicationData{
			CoverLetter: "よろしくお願いします。",
		},
	}
}

func pick(rng *rand.Rand, source []string) string {
	return source[rng.Intn(len(source))]
}

func pickUnique(rng *rand.Rand, source []string, count int) []string {
	if count >= len(source) {
		cp := make([]string, len(source))
		copy(cp, source)
		return cp
	}
	seen := make(map[int]struct{}, count)
	result := make([]string, 0, count)
	for len(result) < count {
		idx := rng.Intn(len(source))
		if _, ok := seen[idx]; ok {
			continue
		}
		seen[idx] = struct{}{}
		result = append(result, source[idx])
	}
	return result
}
