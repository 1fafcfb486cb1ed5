package rendering

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/jonathan/resume-studio/internal/registry"
	"github.com/jonathan/resume-studio/internal/style"
	"github.com/jonathan/resume-studio/internal/types"
)

// Block is the rendered markup of one section.
type Block struct {
	ID    string
	Empty bool
	HTML  template.HTML
}

var sectionTitles = map[string]string{
	registry.SectionName:         "Name",
	registry.SectionDetails:      "Contact",
	registry.SectionDescription:  "Profile",
	registry.SectionEducation:    "Education",
	registry.SectionSkills:       "Skills",
	registry.SectionProjects:     "Projects",
	registry.SectionExperience:   "Experience",
	registry.SectionAchievements: "Achievements",
}

// sectionView is the data every section template receives.
type sectionView struct {
	ID    string
	Title string
	Empty bool

	Align   string
	Justify string
	Padding string
	Link    string

	H1, H2, H3, H4 string

	NameSize, TitleSize, ItemSize, MetaSize, BodySize string

	Name        string
	Description template.HTML
	Contacts    []contactView
	Items       []itemView
	Skills      []skillView
	Education   types.Education
	Schooling   bool
}

type contactView struct {
	Label string
	Text  string
	Href  string
}

type linkView struct {
	Label string
	Href  string
}

type itemView struct {
	Title    string
	Subtitle string
	Meta     string
	Tags     string
	Body     template.HTML
	Links    []linkView
}

type skillView struct {
	Domain    string
	Languages string
	Color     string
	Width     string
	Label     string
}

const sectionTemplates = `
{{define "open"}}<section class="section section-{{.ID}}{{if .Empty}} section-empty{{end}}" data-section="{{.ID}}" style="padding-top: {{.Padding}}; padding-bottom: {{.Padding}}">{{end}}
{{define "title"}}<h2 style="color: {{.H2}}; font-size: {{.TitleSize}}">{{.Title}}</h2>{{end}}
{{define "header"}}<div class="row" style="display: flex; justify-content: {{.Justify}}">{{end}}

{{define "name"}}{{template "open" .}}{{if not .Empty}}<h1 style="color: {{.H1}}; font-size: {{.NameSize}}; text-align: {{.Align}}">{{.Name}}</h1>{{end}}</section>{{end}}

{{define "details"}}{{template "open" .}}{{if not .Empty}}<ul class="contacts" style="font-size: {{.MetaSize}}; color: {{.H4}}">{{range .Contacts}}<li data-contact="{{.Label}}">{{if .Href}}<a href="{{.Href}}" style="color: {{$.Link}}">{{.Text}}</a>{{else}}{{.Text}}{{end}}</li>{{end}}</ul>{{end}}</section>{{end}}

{{define "description"}}{{template "open" .}}{{if not .Empty}}{{template "title" .}}<div class="rich" style="font-size: {{.BodySize}}; text-align: {{.Align}}">{{.Description}}</div>{{end}}</section>{{end}}

{{define "education"}}{{template "open" .}}{{if not .Empty}}{{template "title" .}}{{with .Education}}{{template "header" $}}<h3 style="color: {{$.H3}}; font-size: {{$.ItemSize}}">{{.College}}</h3><span style="color: {{$.H4}}; font-size: {{$.MetaSize}}">{{.StartYear}}{{if .EndYear}} - {{.EndYear}}{{end}}</span></div><p style="font-size: {{$.BodySize}}; text-align: {{$.Align}}">{{.Degree}}{{if .Specialization}}, {{.Specialization}}{{end}}{{if .Location}} | {{.Location}}{{end}}{{if .CGPA}} | CGPA: {{.CGPA}}{{end}}</p>{{if $.Schooling}}{{template "header" $}}<h3 style="color: {{$.H3}}; font-size: {{$.ItemSize}}">{{.School}}</h3><span style="color: {{$.H4}}; font-size: {{$.MetaSize}}">{{.SchoolYear}}</span></div><p style="font-size: {{$.BodySize}}; text-align: {{$.Align}}">{{.Board}}{{if .Percentage}} | {{.Percentage}}{{end}}</p>{{end}}{{end}}{{end}}</section>{{end}}

{{define "skills"}}{{template "open" .}}{{if not .Empty}}{{template "title" .}}<div class="skill-bar" style="display: flex; width: 100%; height: 8px">{{range .Skills}}<div class="skill-segment" data-domain="{{.Domain}}" style="width: {{.Width}}; background-color: {{.Color}}"></div>{{end}}</div><ul class="skill-legend" style="font-size: {{.MetaSize}}">{{range .Skills}}<li data-domain="{{.Domain}}"><span class="swatch" style="background-color: {{.Color}}"></span>{{.Domain}} <span class="percent">{{.Label}}</span></li>{{end}}</ul><ul class="skill-list" style="font-size: {{.BodySize}}">{{range .Skills}}<li><strong style="color: {{$.H3}}">{{.Domain}}:</strong> {{.Languages}}</li>{{end}}</ul>{{end}}</section>{{end}}

{{define "items"}}{{template "open" .}}{{if not .Empty}}{{template "title" .}}{{range .Items}}<article class="item">{{template "header" $}}<div><h3 style="color: {{$.H3}}; font-size: {{$.ItemSize}}">{{.Title}}</h3>{{if .Subtitle}}<span class="subtitle" style="color: {{$.H4}}; font-size: {{$.MetaSize}}">{{.Subtitle}}</span>{{end}}</div>{{if .Meta}}<span class="meta" style="color: {{$.H4}}; font-size: {{$.MetaSize}}">{{.Meta}}</span>{{end}}</div>{{if .Tags}}<p class="tags" style="font-size: {{$.MetaSize}}">{{.Tags}}</p>{{end}}{{if .Links}}<p class="links" style="font-size: {{$.MetaSize}}">{{range $i, $l := .Links}}{{if $i}} | {{end}}<a href="{{$l.Href}}" style="color: {{$.Link}}">{{$l.Label}}</a>{{end}}</p>{{end}}{{if .Body}}<div class="rich" style="font-size: {{$.BodySize}}; text-align: {{$.Align}}">{{.Body}}</div>{{end}}</article>{{end}}{{end}}</section>{{end}}
`

var sectionTmpl = template.Must(template.New("sections").Parse(sectionTemplates))

var templateNames = map[string]string{
	registry.SectionName:         "name",
	registry.SectionDetails:      "details",
	registry.SectionDescription:  "description",
	registry.SectionEducation:    "education",
	registry.SectionSkills:       "skills",
	registry.SectionProjects:     "items",
	registry.SectionExperience:   "items",
	registry.SectionAchievements: "items",
}

// Renderer renders section blocks. It is stateless and safe for concurrent use.
type Renderer struct{}

// NewRenderer creates a section renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render produces the block for one section. Missing data renders as an
// empty container; only an unknown section id is an error.
func (rd *Renderer) Render(section string, resume *types.ResumeData, res *style.Resolver, col style.Column) (Block, error) {
	name, ok := templateNames[section]
	if !ok {
		return Block{}, &registry.UnknownSectionError{Section: section}
	}
	if resume == nil {
		resume = &types.ResumeData{}
	}

	view := baseView(section, res, col)
	fill(&view, section, resume, res)

	var buf bytes.Buffer
	if err := sectionTmpl.ExecuteTemplate(&buf, name, view); err != nil {
		return Block{}, &TemplateError{Name: section, Cause: err}
	}
	return Block{ID: section, Empty: view.Empty, HTML: template.HTML(buf.String())}, nil //nolint:gosec // produced by html/template
}

func baseView(section string, res *style.Resolver, col style.Column) sectionView {
	return sectionView{
		ID:        section,
		Title:     sectionTitles[section],
		Align:     res.TextAlign(),
		Justify:   res.RowJustify(),
		Padding:   res.SectionPaddingY(),
		Link:      res.LinkColor(),
		H1:        res.ColumnHeadingColor(col, types.H1),
		H2:        res.ColumnHeadingColor(col, types.H2),
		H3:        res.ColumnHeadingColor(col, types.H3),
		H4:        res.ColumnHeadingColor(col, types.H4),
		NameSize:  res.FontSize(style.RoleName).CSS,
		TitleSize: res.FontSize(style.RoleSectionTitle).CSS,
		ItemSize:  res.FontSize(style.RoleItemTitle).CSS,
		MetaSize:  res.FontSize(style.RoleMeta).CSS,
		BodySize:  res.FontSize(style.RoleBody).CSS,
	}
}

func fill(v *sectionView, section string, resume *types.ResumeData, res *style.Resolver) {
	switch section {
	case registry.SectionName:
		v.Name = strings.TrimSpace(resume.Name)
		v.Empty = v.Name == ""

	case registry.SectionDetails:
		v.Contacts = contacts(resume.Contact)
		v.Empty = len(v.Contacts) == 0

	case registry.SectionDescription:
		v.Description = SanitizeHTML(resume.Description)
		v.Empty = strings.TrimSpace(string(v.Description)) == ""

	case registry.SectionEducation:
		v.Education = resume.Education
		v.Schooling = resume.Education.HasSchooling()
		v.Empty = resume.Education == (types.Education{})

	case registry.SectionSkills:
		shares := SkillDistribution(resume.Skills)
		for i, s := range shares {
			v.Skills = append(v.Skills, skillView{
				Domain:    s.Domain,
				Languages: strings.Join(resume.Skills[i].Languages, ", "),
				Color:     res.SkillColor(s.Domain, i),
				Width:     s.Width(),
				Label:     s.Label(),
			})
		}
		v.Empty = len(v.Skills) == 0

	case registry.SectionExperience:
		for _, e := range resume.Experience {
			v.Items = append(v.Items, itemView{
				Title:    e.Company,
				Subtitle: e.Role,
				Meta:     e.Years,
				Tags:     e.Technologies,
				Body:     SanitizeHTML(e.Description),
			})
		}
		v.Empty = len(v.Items) == 0

	case registry.SectionProjects:
		for _, p := range resume.Projects {
			item := itemView{Title: p.Name, Body: SanitizeHTML(p.Description)}
			if p.GitHub != "" {
				item.Links = append(item.Links, linkView{Label: "GitHub", Href: p.GitHub})
			}
			if p.Demo != "" {
				item.Links = append(item.Links, linkView{Label: "Demo", Href: p.Demo})
			}
			v.Items = append(v.Items, item)
		}
		v.Empty = len(v.Items) == 0

	case registry.SectionAchievements:
		for _, a := range resume.Achievements {
			v.Items = append(v.Items, itemView{
				Title: a.Title,
				Meta:  strings.TrimSpace(a.Month + " " + a.Year),
				Body:  SanitizeHTML(a.Description),
			})
		}
		v.Empty = len(v.Items) == 0
	}
}

func contacts(c types.Contact) []contactView {
	var out []contactView
	add := func(label, text, href string) {
		if strings.TrimSpace(text) == "" {
			return
		}
		out = append(out, contactView{Label: label, Text: text, Href: href})
	}
	add("email", c.Email, "mailto:"+c.Email)
	add("phone", c.Phone, "")
	add("location", c.Location, "")
	add("linkedin", c.LinkedIn, c.LinkedIn)
	add("github", c.GitHub, c.GitHub)
	add("website", c.Website, c.Website)
	return out
}
