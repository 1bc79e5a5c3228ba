// Package web serves the human-facing surface of the API: the service
// description document at the root and the HTML search interface.
package web

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	version string
}

func NewHandler(version string) *Handler {
	return &Handler{version: version}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Describe)
	e.GET("/search/", h.SearchPage)
}

// Describe returns the service description document: a catalog of every
// endpoint with its parameters, plus usage notes.
func (h *Handler) Describe(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":     "Individual Healthcare Provider Lookup API",
		"version":     h.version,
		"description": "Search for individual healthcare providers only (excludes organizations)",
		"endpoints": map[string]interface{}{
			"search": map[string]interface{}{
				"url":         "/api/search/",
				"method":      "GET/POST",
				"description": "Search individual providers by name, location, specialty",
				"parameters": map[string]string{
					"first_name": "Provider first name",
					"last_name":  "Provider last name",
					"name":       "Combined name, split into first and last",
					"city":       "Practice city",
					"state":      "US state abbreviation (e.g., CA, NY)",
					"zip_code":   "ZIP code (5 or 9 digits)",
					"specialty":  "Medical specialty",
					"phone":      "Practice phone number",
					"group_by_specialty": "Return all matches bucketed by specialty instead of a page",
					"page":               "Page number (default: 1)",
					"page_size":          "Results per page (max: 100, default: 25)",
				},
			},
			"quick_search": map[string]interface{}{
				"url":         "/api/quick-search/",
				"method":      "GET",
				"description": "Quick search for autocomplete (min 2 characters)",
				"parameters":  map[string]string{"q": "Search query"},
			},
			"advanced_search": map[string]interface{}{
				"url":         "/api/advanced-search/",
				"method":      "GET",
				"description": "Advanced search with specialty_group and phone_area_code filters",
			},
			"provider_detail": map[string]interface{}{
				"url":         "/api/provider/{npi}/",
				"method":      "GET",
				"description": "Get detailed information for specific individual provider",
			},
			"health_check": map[string]interface{}{
				"url":         "/api/health/",
				"method":      "GET",
				"description": "Database connectivity and stats",
			},
			"states": map[string]interface{}{
				"url":         "/api/states/",
				"method":      "GET",
				"description": "List of US states with individual providers",
			},
			"cities": map[string]interface{}{
				"url":         "/api/cities/",
				"method":      "GET",
				"description": "List of cities with individual providers",
				"parameters":  map[string]string{"state": "Filter by state (optional)"},
			},
			"taxonomies": map[string]interface{}{
				"url":         "/api/taxonomies/",
				"method":      "GET",
				"description": "Healthcare taxonomy codes and descriptions",
				"parameters":  map[string]string{"q": "Search query (optional)"},
			},
			"specialty_groups": map[string]interface{}{
				"url":         "/api/specialty-groups/",
				"method":      "GET",
				"description": "List of medical specialty groups",
			},
			"specialty_classifications": map[string]interface{}{
				"url":         "/api/specialty-classifications/",
				"method":      "GET",
				"description": "List of specialty classifications",
				"parameters":  map[string]string{"group": "Filter by specialty group (optional)"},
			},
		},
		"notes": map[string]interface{}{
			"entity_types":   "Only individual providers (entity_type_code = 1) are included",
			"data_source":    "NPPES (National Plan and Provider Enumeration System)",
			"us_states_only": "State dropdown limited to 50 US states + DC",
			"search_tips": []string{
				"Use first_name and last_name separately for better results",
				"State must be 2-letter abbreviation (CA, NY, TX, etc.)",
				"ZIP codes support both 5-digit and 9-digit formats",
				"Specialty search includes classification, specialization, and grouping",
			},
		},
	})
}

// SearchPage serves the self-contained HTML search interface.
func (h *Handler) SearchPage(c echo.Context) error {
	return c.HTML(http.StatusOK, searchPageHTML)
}

const searchPageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Provider Lookup</title>
  <style>
    body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 0; background: #f5f7fa; color: #1f2933; }
    .container { max-width: 960px; margin: 0 auto; padding: 2rem 1rem; }
    h1 { font-size: 1.5rem; }
    form { background: #fff; border: 1px solid #d9e2ec; border-radius: 8px; padding: 1rem; display: grid; grid-template-columns: repeat(auto-fit, minmax(200px, 1fr)); gap: 0.75rem; }
    label { display: block; font-size: 0.8rem; margin-bottom: 0.25rem; color: #52606d; }
    input, select { width: 100%; box-sizing: border-box; padding: 0.5rem; border: 1px solid #cbd2d9; border-radius: 4px; }
    button { grid-column: 1 / -1; padding: 0.6rem; background: #2563eb; color: #fff; border: none; border-radius: 4px; cursor: pointer; font-size: 1rem; }
    button:hover { background: #1d4ed8; }
    table { width: 100%; border-collapse: collapse; margin-top: 1.5rem; background: #fff; }
    th, td { text-align: left; padding: 0.5rem 0.75rem; border-bottom: 1px solid #e4e7eb; font-size: 0.9rem; }
    th { background: #f0f4f8; }
    .meta { margin-top: 0.75rem; font-size: 0.85rem; color: #52606d; }
    .pager { margin-top: 0.75rem; display: flex; gap: 0.5rem; }
    .pager button { grid-column: auto; padding: 0.4rem 0.8rem; }
    .error { color: #b91c1c; margin-top: 1rem; }
  </style>
</head>
<body>
<div class="container">
  <h1>Individual Healthcare Provider Lookup</h1>
  <form id="search-form">
    <div><label for="first_name">First name</label><input id="first_name" name="first_name"></div>
    <div><label for="last_name">Last name</label><input id="last_name" name="last_name"></div>
    <div><label for="city">City</label><input id="city" name="city"></div>
    <div><label for="state">State</label><select id="state" name="state"><option value="">Any</option></select></div>
    <div><label for="zip_code">ZIP code</label><input id="zip_code" name="zip_code"></div>
    <div><label for="specialty">Specialty</label><input id="specialty" name="specialty"></div>
    <div><label for="phone">Phone</label><input id="phone" name="phone"></div>
    <button type="submit">Search</button>
  </form>
  <div id="error" class="error" hidden></div>
  <div id="meta" class="meta"></div>
  <table id="results" hidden>
    <thead><tr><th>Name</th><th>Specialty</th><th>Address</th><th>Phone</th></tr></thead>
    <tbody></tbody>
  </table>
  <div class="pager">
    <button id="prev" hidden>Previous</button>
    <button id="next" hidden>Next</button>
  </div>
</div>
<script>
(function () {
  var form = document.getElementById('search-form');
  var table = document.getElementById('results');
  var tbody = table.querySelector('tbody');
  var meta = document.getElementById('meta');
  var errBox = document.getElementById('error');
  var prev = document.getElementById('prev');
  var next = document.getElementById('next');
  var page = 1;

  fetch('/api/states/').then(function (r) { return r.json(); }).then(function (data) {
    var select = document.getElementById('state');
    (data.states || []).forEach(function (s) {
      var opt = document.createElement('option');
      opt.value = s;
      opt.textContent = s;
      select.appendChild(opt);
    });
  });

  function cell(text) {
    var td = document.createElement('td');
    td.textContent = text || '';
    return td;
  }

  function run() {
    var params = new URLSearchParams(new FormData(form));
    params.set('page', page);
    errBox.hidden = true;
    fetch('/api/search/?' + params.toString())
      .then(function (r) {
        if (!r.ok) { throw new Error('search failed (' + r.status + ')'); }
        return r.json();
      })
      .then(function (data) {
        tbody.innerHTML = '';
        data.results.forEach(function (p) {
          var tr = document.createElement('tr');
          tr.appendChild(cell(p.full_name));
          tr.appendChild(cell(p.taxonomy_description));
          tr.appendChild(cell(p.address));
          tr.appendChild(cell(p.phone));
          tbody.appendChild(tr);
        });
        table.hidden = data.results.length === 0;
        var pg = data.pagination;
        meta.textContent = pg.total_results + ' providers, page ' + pg.current_page + ' of ' + pg.total_pages;
        prev.hidden = !pg.has_previous;
        next.hidden = !pg.has_next;
      })
      .catch(function (err) {
        errBox.textContent = err.message;
        errBox.hidden = false;
      });
  }

  form.addEventListener('submit', function (ev) { ev.preventDefault(); page = 1; run(); });
  prev.addEventListener('click', function () { if (page > 1) { page--; run(); } });
  next.addEventListener('click', function () { page++; run(); });
})();
</script>
</body>
</html>
`
