// Package rcnet reads and writes project container files.
//
// # Container
//
// A container file is a zip archive with exactly one entry, [DataFileName],
// holding an XML document:
//
//	<memlayout version="65537" platform="x64">
//	  <classes>
//	    <class uuid="..." name="Player" comment="" address="game.exe+0x10">
//	      <node name="health" comment="" hidden="false" type="Int32Node"/>
//	      <node name="weapon" comment="" hidden="false" type="PointerNode">
//	        <node name="" comment="" hidden="false" type="ClassInstanceNode" reference="..."/>
//	      </node>
//	    </class>
//	  </classes>
//	  <enums>
//	    <enum name="Team" flags="false" size="4"><item name="Red" value="0"/></enum>
//	  </enums>
//	  <custom_data>
//	    <PluginX_Key>value</PluginX_Key>
//	  </custom_data>
//	</memlayout>
//
// Class instances and function owners refer to classes by UUID, so classes
// may reference each other in cycles. Pointers and arrays own their inner
// node, which is written as a nested element.
//
// # Versioning
//
// The version attribute is [FileVersion]. Its upper 16 bits are the
// compatibility-critical part: files whose critical part is newer than this
// build are rejected, everything else is read on a best-effort basis.
//
// # Lossy conversion
//
// Writers consult the [convert.Registry] for every node. A node nobody
// recognises is logged (an error naming the node, a warning naming its Go
// type) and left out. Readers do the same for unknown type tags and for
// references to classes missing from the document. Counts of skipped nodes
// are reported to [observability.FileHooks].
//
// # Ad-hoc export
//
// [WriteNodes] packages an arbitrary selection of nodes, e.g. a clipboard
// selection, into a self-contained document: every class the selection
// refers to is included. [ReadNodes] reads such a document back.
//
// [observability.FileHooks]: github.com/matzehuels/memlayout/pkg/observability.FileHooks
package rcnet
