package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"

	"github.com/gin-contrib/multitemplate"
	"github.com/user/cinewish/internal/config"
	"github.com/user/cinewish/internal/model"
	"github.com/user/cinewish/internal/utils"
)

//go:embed templates static
var files embed.FS

// Pages 所有页面模板
var Pages = []string{"home", "wishlist", "profile", "denied", "error"}

const noPoster = "/static/img/no-poster.svg"

// Static 静态资源文件系统（以 static/ 为根）
func Static() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// FuncMap 模板函数
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"poster": func(m model.Movie, size string) string {
			return utils.SafeImageURL(m.PosterURL(size), noPoster, config.ImageDomains)
		},
		"avatar": func(raw string) string {
			return utils.SafeImageURL(raw, "", config.ImageDomains)
		},
		"rating": func(v float64) string {
			return fmt.Sprintf("%.1f", v)
		},
		"dict": func(values ...interface{}) (map[string]interface{}, error) {
			if len(values)%2 != 0 {
				return nil, fmt.Errorf("invalid dict call")
			}
			dict := make(map[string]interface{}, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict keys must be strings")
				}
				dict[key] = values[i+1]
			}
			return dict, nil
		},
		"default": func(defaultValue, value interface{}) interface{} {
			switch v := value.(type) {
			case string:
				if v == "" {
					return defaultValue
				}
			case nil:
				return defaultValue
			}
			return value
		},
	}
}

// LoadTemplates 使用 multitemplate 组装 布局 + 局部模板 + 页面
func LoadTemplates() multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	partials, err := fs.Glob(files, "templates/partials/*.html")
	if err != nil {
		panic(err)
	}

	for _, page := range Pages {
		name := page + ".html"
		patterns := []string{"templates/layouts/base.html"}
		patterns = append(patterns, partials...)
		patterns = append(patterns, path.Join("templates/pages", name))

		tmpl := template.Must(template.New("base.html").Funcs(FuncMap()).ParseFS(files, patterns...))
		r.Add(name, tmpl)
	}

	return r
}
