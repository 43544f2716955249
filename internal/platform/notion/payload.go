package notion

// maxTextRunes is Notion's limit for a single rich_text content string.
const maxTextRunes = 2000

type pageRequest struct {
	Parent     parent              `json:"parent"`
	Properties map[string]property `json:"properties"`
}

type parent struct {
	DatabaseID string `json:"database_id"`
}

// property holds exactly one populated value kind.
type property struct {
	Title       []richText     `json:"title,omitempty"`
	RichText    []richText     `json:"rich_text,omitempty"`
	MultiSelect []selectOption `json:"multi_select,omitempty"`
	Select      *selectOption  `json:"select,omitempty"`
	Number      *int           `json:"number,omitempty"`
	URL         *string        `json:"url,omitempty"`
}

type richText struct {
	Type string      `json:"type"`
	Text textContent `json:"text"`
}

type textContent struct {
	Content string `json:"content"`
}

type selectOption struct {
	Name string `json:"name"`
}

type pageResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

func textSpan(content string) []richText {
	runes := []rune(content)
	if len(runes) > maxTextRunes {
		content = string(runes[:maxTextRunes])
	}
	return []richText{{Type: "text", Text: textContent{Content: content}}}
}

func titleProp(content string) property { return property{Title: textSpan(content)} }

func textProp(content string) property { return property{RichText: textSpan(content)} }

func numberProp(n int) property { return property{Number: &n} }

func tagsProp(names ...string) property {
	options := make([]selectOption, 0, len(names))
	for _, name := range names {
		options = append(options, selectOption{Name: name})
	}
	return property{MultiSelect: options}
}

// optional properties are left out when empty; Notion rejects an empty
// select name or url.
func setSelect(props map[string]property, key, name string) {
	if name != "" {
		props[key] = property{Select: &selectOption{Name: name}}
	}
}

func setURL(props map[string]property, key, url string) {
	if url != "" {
		props[key] = property{URL: &url}
	}
}
