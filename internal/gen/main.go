// Command gen regenerates geometry/mesh/attribute_type_table.go from the
// attributeTypes table in this package: text/template for the source,
// go/format for the output, and essentials.Must for every error that would
// mean the declarative table and the template have drifted apart.
package main

import (
	"bytes"
	"go/format"
	"io/ioutil"
	"log"
	"path/filepath"
	"text/template"

	"github.com/unixpickle/essentials"
)

//go:generate go run .

func main() {
	GenerateAttributeTypeTable()
}

func GenerateAttributeTypeTable() {
	inPath := filepath.Join("templates", "attribute_type.template")
	tmpl, err := template.ParseFiles(inPath)
	essentials.Must(err)

	outPath := filepath.Join("..", "..", "geometry", "mesh", "attribute_type_table.go")
	log.Println("Creating", outPath, "...")

	data := RenderTemplate(tmpl, map[string]interface{}{"Types": attributeTypes})
	data = ReformatCode(data)
	data = InjectGeneratedComment(data, inPath)
	essentials.Must(ioutil.WriteFile(outPath, []byte(data), 0644))
}

func RenderTemplate(tmpl *template.Template, data interface{}) string {
	w := bytes.NewBuffer(nil)
	essentials.Must(tmpl.Execute(w, data))
	return w.String()
}

func ReformatCode(code string) string {
	source, err := format.Source([]byte(code))
	essentials.Must(err)
	return string(source)
}

func InjectGeneratedComment(data, sourceFile string) string {
	return "// Generated from " + sourceFile + "; do not edit.\n\n" + data
}
