// Package render groups the output stages of an import.
//
// # Overview
//
// Each subpackage consumes a built [uitree.Root] or the scene derived from
// it:
//
//   - [export] writes every image layer as a PNG and registers the files
//     with the asset registry
//   - [scene] turns the tree into anchored containers and saves the prefab
//   - [preview] draws a scene to a PNG at the document's size
//   - [treeviz] renders the layout tree as a Graphviz diagram
//
// Export and scene are tree visitors driven by [visit.Tree]. The scene
// stage resolves image assets through the registry, so it must run at
// least one host tick after export; the pipeline package sequences the two.
//
//	stats, err := export.Tree(root, dir, registry)
//	// ... registry settles on the next tick ...
//	container, err := scene.Build(root, registry, scene.WithFonts(table))
//	err = preview.Save("preview.png", container, root.Frame())
//
// [uitree.Root]: github.com/matzehuels/psdui/pkg/uitree#Root
// [visit.Tree]: github.com/matzehuels/psdui/pkg/visit#Tree
// [export]: github.com/matzehuels/psdui/pkg/render/export
// [scene]: github.com/matzehuels/psdui/pkg/render/scene
// [preview]: github.com/matzehuels/psdui/pkg/render/preview
// [treeviz]: github.com/matzehuels/psdui/pkg/render/treeviz
package render
