package docx

import (
	"encoding/xml"
	"strconv"
	"strings"
	"text/template"
)

const wordNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

const documentHeader = xml.Header + `<w:document xmlns:w="` + wordNamespace + `"><w:body>`

const documentFooter = `</w:body></w:document>`

const contentTypesXML = xml.Header + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`<Override PartName="/word/numbering.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"/>` +
	`<Override PartName="/word/settings.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.settings+xml"/>` +
	`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>` +
	`<Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>` +
	`</Types>`

const packageRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>` +
	`<Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties" Target="docProps/app.xml"/>` +
	`</Relationships>`

const documentRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering" Target="numbering.xml"/>` +
	`<Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/settings" Target="settings.xml"/>` +
	`</Relationships>`

const appXML = xml.Header + `<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties">` +
	`<Application>go-mdexport</Application></Properties>`

const settingsXML = xml.Header + `<w:settings xmlns:w="` + wordNamespace + `">` +
	`<w:defaultTabStop w:val="720"/>` +
	`<w:compat><w:compatSetting w:name="compatibilityMode" w:uri="http://schemas.microsoft.com/office/word" w:val="15"/></w:compat>` +
	`</w:settings>`

var templateFuncs = template.FuncMap{"xml": escapeXML}

var coreTemplate = template.Must(template.New("core").Funcs(templateFuncs).Parse(xml.Header +
	`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"` +
	` xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/"` +
	` xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">` +
	`<dc:title>{{xml .Title}}</dc:title><dc:creator>go-mdexport</dc:creator>` +
	`</cp:coreProperties>`))

// Style IDs referenced by the renderer.
const (
	styleListBullet   = "ListBullet"
	styleListNumber   = "ListNumber"
	styleIntenseQuote = "IntenseQuote"
	styleSourceCode   = "SourceCode"
)

// codeShade fills the background of inline code runs.
const codeShade = "E8E8E8"

// Font sizes in half-points.
const (
	bodySize = 22
	codeSize = 18
)

// maxHeadingLevel is the deepest heading style WordprocessingML defines.
const maxHeadingLevel = 9

type headingStyle struct {
	ID           string
	Name         string
	Size         int
	OutlineLevel int
}

func headingStyles() []headingStyle {
	sizes := [maxHeadingLevel]int{32, 26, 24, 22, 22, 22, 22, 22, 22}
	out := make([]headingStyle, maxHeadingLevel)
	for i := range out {
		n := strconv.Itoa(i + 1)
		out[i] = headingStyle{ID: "Heading" + n, Name: "heading " + n, Size: sizes[i], OutlineLevel: i}
	}
	return out
}

// headingStyleID maps a heading level to its style, clamped to the levels
// the format supports.
func headingStyleID(level int) string {
	if level < 1 {
		level = 1
	}
	if level > maxHeadingLevel {
		level = maxHeadingLevel
	}
	return "Heading" + strconv.Itoa(level)
}

type stylesData struct {
	Fonts    Fonts
	Headings []headingStyle
}

var stylesTemplate = template.Must(template.New("styles").Funcs(templateFuncs).Parse(xml.Header +
	`<w:styles xmlns:w="` + wordNamespace + `">` +
	`<w:docDefaults><w:rPrDefault><w:rPr>` +
	`<w:rFonts w:ascii="{{xml .Fonts.Body}}" w:hAnsi="{{xml .Fonts.Body}}" w:eastAsia="{{xml .Fonts.EastAsia}}" w:cs="{{xml .Fonts.Body}}"/>` +
	`<w:sz w:val="` + strconv.Itoa(bodySize) + `"/><w:szCs w:val="` + strconv.Itoa(bodySize) + `"/>` +
	`<w:lang w:val="en-US" w:eastAsia="ja-JP"/>` +
	`</w:rPr></w:rPrDefault>` +
	`<w:pPrDefault><w:pPr><w:spacing w:after="120" w:line="276" w:lineRule="auto"/></w:pPr></w:pPrDefault>` +
	`</w:docDefaults>` +
	`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:qFormat/></w:style>` +
	`{{range .Headings}}` +
	`<w:style w:type="paragraph" w:styleId="{{.ID}}"><w:name w:val="{{.Name}}"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:qFormat/>` +
	`<w:pPr><w:keepNext/><w:spacing w:before="240" w:after="80"/><w:outlineLvl w:val="{{.OutlineLevel}}"/></w:pPr>` +
	`<w:rPr><w:b/><w:color w:val="2F5496"/><w:sz w:val="{{.Size}}"/><w:szCs w:val="{{.Size}}"/></w:rPr></w:style>` +
	`{{end}}` +
	`<w:style w:type="paragraph" w:styleId="` + styleListBullet + `"><w:name w:val="List Bullet"/><w:basedOn w:val="Normal"/>` +
	`<w:pPr><w:numPr><w:numId w:val="` + strconv.Itoa(bulletNumID) + `"/></w:numPr><w:spacing w:after="60"/></w:pPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="` + styleListNumber + `"><w:name w:val="List Number"/><w:basedOn w:val="Normal"/>` +
	`<w:pPr><w:spacing w:after="60"/></w:pPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="` + styleIntenseQuote + `"><w:name w:val="Intense Quote"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:qFormat/>` +
	`<w:pPr><w:pBdr><w:top w:val="single" w:sz="4" w:space="10" w:color="4472C4"/><w:bottom w:val="single" w:sz="4" w:space="10" w:color="4472C4"/></w:pBdr>` +
	`<w:spacing w:before="360" w:after="360"/><w:ind w:left="864" w:right="864"/><w:jc w:val="center"/></w:pPr>` +
	`<w:rPr><w:i/><w:color w:val="4472C4"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="` + styleSourceCode + `"><w:name w:val="Source Code"/><w:basedOn w:val="Normal"/>` +
	`<w:pPr><w:shd w:val="clear" w:color="auto" w:fill="F2F2F2"/><w:spacing w:after="0" w:line="240" w:lineRule="auto"/></w:pPr>` +
	`<w:rPr><w:rFonts w:ascii="{{xml .Fonts.Mono}}" w:hAnsi="{{xml .Fonts.Mono}}" w:cs="{{xml .Fonts.Mono}}"/>` +
	`<w:sz w:val="` + strconv.Itoa(codeSize) + `"/><w:szCs w:val="` + strconv.Itoa(codeSize) + `"/></w:rPr></w:style>` +
	`</w:styles>`))

type numberingInstance struct {
	ID    int
	Start int
}

// Abstract definition 0 is the bullet format, 1 the decimal format.
var numberingTemplate = template.Must(template.New("numbering").Parse(xml.Header +
	`<w:numbering xmlns:w="` + wordNamespace + `">` +
	`<w:abstractNum w:abstractNumId="0"><w:multiLevelType w:val="singleLevel"/>` +
	`<w:lvl w:ilvl="0"><w:start w:val="1"/><w:numFmt w:val="bullet"/><w:lvlText w:val="•"/><w:lvlJc w:val="left"/>` +
	`<w:pPr><w:ind w:left="720" w:hanging="360"/></w:pPr></w:lvl></w:abstractNum>` +
	`<w:abstractNum w:abstractNumId="1"><w:multiLevelType w:val="singleLevel"/>` +
	`<w:lvl w:ilvl="0"><w:start w:val="1"/><w:numFmt w:val="decimal"/><w:lvlText w:val="%1."/><w:lvlJc w:val="left"/>` +
	`<w:pPr><w:ind w:left="720" w:hanging="360"/></w:pPr></w:lvl></w:abstractNum>` +
	`<w:num w:numId="{{.BulletID}}"><w:abstractNumId w:val="0"/></w:num>` +
	`{{range .Numbered}}` +
	`<w:num w:numId="{{.ID}}"><w:abstractNumId w:val="1"/>` +
	`<w:lvlOverride w:ilvl="0"><w:startOverride w:val="{{.Start}}"/></w:lvlOverride></w:num>` +
	`{{end}}` +
	`</w:numbering>`))

func escapeXML(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
