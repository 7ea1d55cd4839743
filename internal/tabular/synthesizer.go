// Package tabular produces synthetic tabular datasets from per-domain models
// registered at startup. The sampling internals are opaque to callers; the
// dispatcher only sees domains, sample counts, and resulting rows.
package tabular

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"
)

// Dataset is a generated table. Columns carries the stable column order used
// by csv and excel encoders.
type Dataset struct {
	Columns []string
	Rows    []map[string]any
}

// ErrUnknownDomain indicates no model is registered for the domain.
var ErrUnknownDomain = fmt.Errorf("unknown tabular domain")

type model struct {
	columns []string
	sample  func(r *rand.Rand, i int, now time.Time) map[string]any
}

// Synthesizer holds the registered domain models. Safe for concurrent use.
type Synthesizer struct {
	mu     sync.Mutex
	rng    *rand.Rand
	models map[string]model
}

// NewSynthesizer registers the built-in domain models.
func NewSynthesizer() *Synthesizer {
	s := &Synthesizer{
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		models: make(map[string]model),
	}
	s.models["ecommerce"] = ecommerceModel()
	s.models["education"] = educationModel()
	s.models["finance"] = financeModel()
	s.models["medical"] = medicalModel()
	return s
}

// Domains lists the registered domains, sorted.
func (s *Synthesizer) Domains() []string {
	out := make([]string, 0, len(s.models))
	for domain := range s.models {
		out = append(out, domain)
	}
	sort.Strings(out)
	return out
}

// Generate samples numSamples rows for the domain.
func (s *Synthesizer) Generate(ctx context.Context, domain string, numSamples int) (Dataset, error) {
	m, ok := s.models[domain]
	if !ok {
		return Dataset{}, fmt.Errorf("%w: %s", ErrUnknownDomain, domain)
	}

	now := time.Now().UTC()
	rows := make([]map[string]any, 0, numSamples)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < numSamples; i++ {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}
		rows = append(rows, m.sample(s.rng, i, now))
	}

	return Dataset{Columns: append([]string(nil), m.columns...), Rows: rows}, nil
}

func ecommerceModel() model {
	products := []string{"Laptop", "Smartphone", "Headphones", "Tablet", "Camera", "Watch", "Speaker", "Keyboard"}
	categories := []string{"Electronics", "Computers", "Mobile", "Accessories", "Gaming"}
	payments := []string{"Credit Card", "PayPal", "Bank Transfer", "Cash on Delivery"}
	statuses := []string{"Pending", "Shipped", "Delivered", "Cancelled"}

	return model{
		columns: []string{
			"order_id", "customer_id", "product_name", "category", "price",
			"quantity", "total_amount", "payment_method", "order_date",
			"shipping_address", "order_status",
		},
		sample: func(r *rand.Rand, i int, now time.Time) map[string]any {
			price := round2(50 + r.Float64()*1950)
			quantity := 1 + r.Intn(9)
			return map[string]any{
				"order_id":         fmt.Sprintf("ORD-%s-%04d", now.Format("20060102"), i+1),
				"customer_id":      fmt.Sprintf("CUST-%04d", 1000+r.Intn(9000)),
				"product_name":     pick(r, products),
				"category":         pick(r, categories),
				"price":            price,
				"quantity":         quantity,
				"total_amount":     round2(price * float64(quantity)),
				"payment_method":   pick(r, payments),
				"order_date":       pastDate(r, now),
				"shipping_address": fmt.Sprintf("Address %d", 1+r.Intn(999)),
				"order_status":     pick(r, statuses),
			}
		},
	}
}

func educationModel() model {
	subjects := []string{"Mathematics", "Science", "English", "History", "Geography", "Art", "Music", "Physical Education"}
	grades := []string{"A", "B", "C", "D", "F"}
	semesters := []string{"Fall", "Spring", "Summer"}

	return model{
		columns: []string{
			"student_id", "student_name", "subject", "grade", "score",
			"attendance_percentage", "semester", "year", "teacher_id", "class_size",
		},
		sample: func(r *rand.Rand, i int, now time.Time) map[string]any {
			return map[string]any{
				"student_id":            fmt.Sprintf("STU-%04d", 1000+r.Intn(9000)),
				"student_name":          fmt.Sprintf("Student %d", i+1),
				"subject":               pick(r, subjects),
				"grade":                 pick(r, grades),
				"score":                 r.Intn(101),
				"attendance_percentage": 60 + r.Intn(41),
				"semester":              pick(r, semesters),
				"year":                  2020 + r.Intn(5),
				"teacher_id":            fmt.Sprintf("TCH-%03d", 100+r.Intn(900)),
				"class_size":            15 + r.Intn(20),
			}
		},
	}
}

func financeModel() model {
	transactionTypes := []string{"Deposit", "Withdrawal", "Transfer", "Payment", "Investment"}
	accountTypes := []string{"Savings", "Checking", "Investment", "Credit"}
	statuses := []string{"Completed", "Pending", "Failed"}

	return model{
		columns: []string{
			"transaction_id", "account_id", "account_type", "transaction_type",
			"amount", "balance", "transaction_date", "merchant", "location", "status",
		},
		sample: func(r *rand.Rand, i int, now time.Time) map[string]any {
			return map[string]any{
				"transaction_id":   fmt.Sprintf("TXN-%s-%04d", now.Format("20060102"), i+1),
				"account_id":       fmt.Sprintf("ACC-%05d", 10000+r.Intn(90000)),
				"account_type":     pick(r, accountTypes),
				"transaction_type": pick(r, transactionTypes),
				"amount":           round2(10 + r.Float64()*9990),
				"balance":          round2(1000 + r.Float64()*49000),
				"transaction_date": pastDate(r, now),
				"merchant":         fmt.Sprintf("Merchant %d", 1+r.Intn(99)),
				"location":         fmt.Sprintf("City %d", 1+r.Intn(49)),
				"status":           pick(r, statuses),
			}
		},
	}
}

func medicalModel() model {
	conditions := []string{"Hypertension", "Diabetes", "Asthma", "Arthritis", "Heart Disease", "Depression"}
	medications := []string{"Aspirin", "Ibuprofen", "Metformin", "Lisinopril", "Atorvastatin", "Omeprazole"}
	genders := []string{"Male", "Female"}

	return model{
		columns: []string{
			"patient_id", "patient_name", "age", "gender", "weight_kg", "height_cm",
			"bmi", "condition", "medication", "visit_date", "doctor_id", "blood_pressure",
		},
		sample: func(r *rand.Rand, i int, now time.Time) map[string]any {
			weight := round1(50 + r.Float64()*70)
			height := round1(150 + r.Float64()*50)
			return map[string]any{
				"patient_id":     fmt.Sprintf("PAT-%05d", 10000+r.Intn(90000)),
				"patient_name":   fmt.Sprintf("Patient %d", i+1),
				"age":            18 + r.Intn(67),
				"gender":         pick(r, genders),
				"weight_kg":      weight,
				"height_cm":      height,
				"bmi":            round1(weight / ((height / 100) * (height / 100))),
				"condition":      pick(r, conditions),
				"medication":     pick(r, medications),
				"visit_date":     pastDate(r, now),
				"doctor_id":      fmt.Sprintf("DOC-%03d", 100+r.Intn(900)),
				"blood_pressure": fmt.Sprintf("%d/%d", 110+r.Intn(30), 70+r.Intn(20)),
			}
		},
	}
}

func pick(r *rand.Rand, values []string) string {
	return values[r.Intn(len(values))]
}

func pastDate(r *rand.Rand, now time.Time) string {
	return now.AddDate(0, 0, -r.Intn(365)).Format("2006-01-02")
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

func round1(v float64) float64 {
	return float64(int64(v*10+0.5)) / 10
}
