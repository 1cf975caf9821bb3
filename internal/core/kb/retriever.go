package kb

import (
	"context"
	"encoding/json"

	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/llm"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/vector"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Retriever assembles the business context the assistant answers from
type Retriever struct {
	db     *gorm.DB
	vector *vector.Service // nil when semantic search is disabled
}

func NewRetriever(db *gorm.DB, vectorSvc *vector.Service) *Retriever {
	return &Retriever{db: db, vector: vectorSvc}
}

// GetBusinessContext loads the tenant's profile, FAQ, and assistant
// settings. When a question is given and the vector store is enabled,
// relevant document excerpts are retrieved as well.
func (r *Retriever) GetBusinessContext(ctx context.Context, clientID uuid.UUID, question string) (*llm.BusinessContext, error) {
	bc := &llm.BusinessContext{}

	var client models.Client
	if err := r.db.First(&client, "id = ?", clientID).Error; err != nil {
		return nil, err
	}
	bc.BusinessName = client.BusinessName
	if bc.BusinessName == "" {
		bc.BusinessName = client.Name
	}

	var info models.BusinessInfo
	err := r.db.First(&info, "client_id = ?", clientID).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}
	if err == nil {
		bc.Description = info.Description
		bc.Address = info.Address
		bc.OpeningHours = info.OpeningHours
		bc.Services = info.Services

		if len(info.FAQ) > 0 {
			var faqs []models.FAQEntry
			if err := json.Unmarshal(info.FAQ, &faqs); err == nil {
				for _, f := range faqs {
					bc.FAQs = append(bc.FAQs, llm.FAQ{
						Question: f.Question,
						Answer:   f.Answer,
					})
				}
			}
		}
	}

	var assistant models.AssistantConfig
	err = r.db.First(&assistant, "client_id = ?", clientID).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}
	if err == nil {
		bc.Tone = assistant.Tone
		bc.Instructions = assistant.Instructions
	}

	if r.vector != nil && question != "" {
		matches, err := r.vector.SearchDocuments(ctx, clientID, question, 3)
		// Document retrieval is best effort, the assistant still
		// answers from the profile when the vector store is down
		if err == nil {
			for _, m := range matches {
				bc.DocumentExcerpts = append(bc.DocumentExcerpts, m.Excerpt)
			}
		}
	}

	return bc, nil
}
