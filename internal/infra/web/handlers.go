package web

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	"telegram-tarot-bot/internal/domain"
	"telegram-tarot-bot/internal/infra/logging"
)

var indexPage = template.Must(template.New("index").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width,initial-scale=1" />
<title>Tarot Spread</title>
<style>
body{font-family:system-ui,Arial,sans-serif;margin:2rem;background:#14101f;color:#eee}
h1{text-align:center}
.spread{display:flex;flex-wrap:wrap;gap:16px;justify-content:center}
.card{width:200px;border:1px solid #3a3356;border-radius:12px;padding:16px;background:#1d1730;cursor:pointer;text-align:center}
.card img{max-width:100%;border-radius:8px}
.card h3{margin:8px 0 0}
.desc{max-width:560px;margin:24px auto;padding:16px;border:1px solid #3a3356;border-radius:12px;display:none}
</style>
</head>
<body>
<h1>Your spread</h1>
<div class="spread">
{{range .Cards}}
  <div class="card" data-card-id="{{.ID}}">
    <img src="{{.Image}}" alt="{{.Name}}" />
    <h3>{{.Name}}</h3>
  </div>
{{end}}
</div>
<div class="desc" id="desc"></div>
<script>
document.querySelectorAll('.card').forEach(function (el) {
  el.addEventListener('click', function () {
    fetch('/get_card_description', {
      method: 'POST',
      headers: {'Content-Type': 'application/json'},
      body: JSON.stringify({card_id: el.dataset.cardId})
    }).then(function (resp) { return resp.json(); }).then(function (data) {
      var box = document.getElementById('desc');
      if (data.error) {
        box.textContent = data.error;
      } else {
        box.innerHTML = '<h2></h2><p></p>';
        box.querySelector('h2').textContent = data.name;
        box.querySelector('p').textContent = data.description;
      }
      box.style.display = 'block';
    });
  });
});
</script>
</body>
</html>`))

// indexHandler renders the front page with a fresh random draw of cards.
func (s *Server) indexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cards := s.cardUC.Sample(r.Context(), sampleSize)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		type cardView struct {
			ID, Name, Image string
		}
		view := struct{ Cards []cardView }{}
		for _, c := range cards {
			view.Cards = append(view.Cards, cardView{ID: c.ID, Name: c.Name, Image: c.Image})
		}
		if err := indexPage.Execute(w, view); err != nil {
			logging.With(r.Context(), s.log).Error().Err(err).Msg("render index failed")
		}
	}
}

type cardDescriptionRequest struct {
	CardID string `json:"card_id"`
}

type cardDescriptionResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// cardDescriptionHandler returns one card's fields by identifier.
func (s *Server) cardDescriptionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req cardDescriptionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
			return
		}

		card, err := s.cardUC.Get(r.Context(), req.CardID)
		if err != nil {
			if errors.Is(err, domain.ErrCardNotFound) {
				writeJSON(w, http.StatusNotFound, errorResponse{Error: "Card not found"})
				return
			}
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Lookup failed"})
			return
		}

		writeJSON(w, http.StatusOK, cardDescriptionResponse{
			Name:        card.Name,
			Description: card.Description,
			Image:       card.Image,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
